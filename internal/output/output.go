package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"imdb-top250/internal/model"
	"imdb-top250/internal/store"
)

// File names written by Writer.
const (
	CSVFile  = "IMDB_Top_250_Movies.csv"
	JSONFile = "IMDB_Top_250_Movies.json"
)

// EncodeCSV renders movies as comma-separated values with a header row.
func EncodeCSV(movies []model.Movie) ([]byte, error) {
	if movies == nil {
		movies = []model.Movie{}
	}
	data, err := gocsv.MarshalBytes(&movies)
	if err != nil {
		return nil, fmt.Errorf("encoding CSV: %w", err)
	}
	return data, nil
}

// EncodeJSON renders movies as a JSON array indented by four spaces. Non-ASCII
// characters and HTML-significant characters are written as-is.
func EncodeJSON(movies []model.Movie) ([]byte, error) {
	if movies == nil {
		movies = []model.Movie{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(movies); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Writer saves movie collections to a store and reports each saved file.
type Writer struct {
	store store.Store
	out   io.Writer
}

// NewWriter creates a Writer that saves to s and prints confirmations to out.
func NewWriter(s store.Store, out io.Writer) *Writer {
	if out == nil {
		out = io.Discard
	}
	return &Writer{store: s, out: out}
}

// Write saves movies as CSV and then as JSON.
func (w *Writer) Write(ctx context.Context, movies []model.Movie) error {
	csvData, err := EncodeCSV(movies)
	if err != nil {
		return err
	}
	jsonData, err := EncodeJSON(movies)
	if err != nil {
		return err
	}

	if err := w.save(ctx, CSVFile, csvData); err != nil {
		return err
	}
	return w.save(ctx, JSONFile, jsonData)
}

func (w *Writer) save(ctx context.Context, name string, data []byte) error {
	if err := w.store.Set(ctx, name, data); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	fmt.Fprintf(w.out, "Data successfully saved to %s\n", w.store.Location(name))
	return nil
}
