package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAutoUsesJSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", "auto")
	require.NoError(t, err)

	logger.Info("extracted movies", "count", 250)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "extracted movies", rec["msg"])
	assert.Equal(t, float64(250), rec["count"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", "text")
	require.NoError(t, err)

	logger.Debug("fetched chart page", "size", "1.2 MB")
	assert.Contains(t, buf.String(), `msg="fetched chart page"`)
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}
