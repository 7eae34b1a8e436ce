package scraper

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateJSONLD(t *testing.T) {
	html := []byte(`<html><head>
<script>var x = 1;</script>
<script type="application/json">{"ignored": true}</script>
<script type=" Application/LD+JSON ">{"itemListElement": []}</script>
<script type="application/ld+json">{"second": true}</script>
</head><body></body></html>`)

	payload, err := LocateJSONLD(html)
	require.NoError(t, err)
	assert.JSONEq(t, `{"itemListElement": []}`, payload)
}

func TestLocateJSONLDMissing(t *testing.T) {
	_, err := LocateJSONLD([]byte(`<html><head><script>var x = 1;</script></head></html>`))
	require.ErrorIs(t, err, ErrDataNotFound)
}

func TestLocateJSONLDKeepsEntities(t *testing.T) {
	payload, err := LocateJSONLD([]byte(`<script type="application/ld+json">{"name":"Tom &amp; Jerry"}</script>`))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Tom &amp; Jerry"}`, payload)
}

func TestDecodeItemList(t *testing.T) {
	entries, err := DecodeItemList(`{"itemListElement":[{"item":{"name":"a"}},{"item":{"name":"b"}}]}`)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", record(record(entries[1])["item"])["name"])
}

func TestDecodeItemListUsesNumbers(t *testing.T) {
	entries, err := DecodeItemList(`{"itemListElement":[{"item":{"aggregateRating":{"ratingCount":2900000}}}]}`)
	require.NoError(t, err)

	rating := record(record(record(entries[0])["item"])["aggregateRating"])
	assert.Equal(t, json.Number("2900000"), rating["ratingCount"])
}

func TestDecodeItemListNoItems(t *testing.T) {
	tests := map[string]string{
		"absent":   `{"name":"Top 250"}`,
		"empty":    `{"itemListElement":[]}`,
		"not list": `{"itemListElement":{"item":{}}}`,
		"null":     `null`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeItemList(payload)
			require.ErrorIs(t, err, ErrNoItems)
		})
	}
}

func TestDecodeItemListMalformed(t *testing.T) {
	tests := map[string]string{
		"truncated":        `{"itemListElement": [`,
		"trailing garbage": `{"itemListElement":[{"item":{"name":"a"}}]} trailing garbage }}}`,
		"second value":     `{"itemListElement":[{"item":{"name":"a"}}]} {"itemListElement":[]}`,
		"empty":            ``,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			entries, err := DecodeItemList(payload)
			require.Error(t, err)
			assert.Nil(t, entries)
			assert.False(t, errors.Is(err, ErrNoItems))
		})
	}
}

func TestDecodeItemListAllowsTrailingWhitespace(t *testing.T) {
	entries, err := DecodeItemList("\n  {\"itemListElement\":[{\"item\":{\"name\":\"a\"}}]}\n\t ")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
