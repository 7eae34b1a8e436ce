package scraper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const jsonLDType = "application/ld+json"

// LocateJSONLD returns the text of the first JSON-LD script element in html.
func LocateJSONLD(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var (
		payload string
		found   bool
	)
	doc.Find("script[type]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		typ, _ := sel.Attr("type")
		if !strings.EqualFold(strings.TrimSpace(typ), jsonLDType) {
			return true
		}
		payload = sel.Text()
		found = true
		return false
	})

	if !found {
		return "", ErrDataNotFound
	}
	return payload, nil
}

// DecodeItemList decodes a JSON-LD payload and returns its itemListElement
// entries in source order. Numbers are kept as json.Number. The payload must
// hold exactly one JSON value.
func DecodeItemList(payload string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing JSON-LD: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, fmt.Errorf("parsing JSON-LD: %w", err)
	}

	entries, ok := data["itemListElement"].([]any)
	if !ok || len(entries) == 0 {
		return nil, ErrNoItems
	}
	return entries, nil
}
