package scraper

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"imdb-top250/internal/model"
)

func decodeItem(t *testing.T, s string) map[string]any {
	t.Helper()
	entries, err := DecodeItemList(`{"itemListElement":[{"item":` + s + `}]}`)
	if err != nil {
		t.Fatalf("decoding item: %v", err)
	}
	return record(record(entries[0])["item"])
}

func TestExtractMovieFullyPopulated(t *testing.T) {
	item := decodeItem(t, `{
		"name": "The Godfather",
		"description": "The aging patriarch of an organized crime dynasty transfers control.",
		"aggregateRating": {"ratingValue": 9.2, "ratingCount": 2000000},
		"contentRating": "R",
		"genre": "Crime",
		"duration": "PT2H55M"
	}`)

	got := ExtractMovie(item, 1)
	want := model.Movie{
		Rank:          2,
		Name:          "The Godfather",
		Description:   "The aging patriarch of an organized crime dynasty transfers control.",
		RatingValue:   "9.2",
		RatingCount:   "2000000",
		ContentRating: "R",
		Genre:         "Crime",
		Duration:      "2h55m",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractMovie mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractMovieMissingFields(t *testing.T) {
	got := ExtractMovie(map[string]any{}, 0)
	want := model.Movie{
		Rank:          1,
		Name:          model.NotAvailable,
		Description:   model.NotAvailable,
		RatingValue:   model.NotAvailable,
		RatingCount:   model.NotAvailable,
		ContentRating: model.NotAvailable,
		Genre:         model.NotAvailable,
		Duration:      model.NotAvailable,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractMovie mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractMovieNullsAreMissing(t *testing.T) {
	item := decodeItem(t, `{"name": null, "aggregateRating": null, "duration": null}`)

	got := ExtractMovie(item, 0)
	assert.Equal(t, model.NotAvailable, got.Name)
	assert.Equal(t, model.NotAvailable, got.RatingValue)
	assert.Equal(t, model.NotAvailable, got.RatingCount)
	assert.Equal(t, model.NotAvailable, got.Duration)
}

func TestExtractMovieDuration(t *testing.T) {
	tests := []struct {
		name string
		item map[string]any
		want string
	}{
		{"hours and minutes", map[string]any{"duration": "PT2H22M"}, "2h22m"},
		{"minutes only", map[string]any{"duration": "PT58M"}, "58m"},
		{"no prefix", map[string]any{"duration": "1H"}, "1h"},
		{"empty", map[string]any{"duration": ""}, model.NotAvailable},
		{"absent", map[string]any{}, model.NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMovie(tt.item, 0).Duration)
		})
	}
}

func TestExtractMovieGenreList(t *testing.T) {
	item := decodeItem(t, `{"genre": ["Drama", "Crime"]}`)
	assert.Equal(t, "Drama, Crime", ExtractMovie(item, 0).Genre)
}

func TestExtractMovieRatingNotRecord(t *testing.T) {
	item := map[string]any{"aggregateRating": "9.0"}

	got := ExtractMovie(item, 0)
	assert.Equal(t, model.NotAvailable, got.RatingValue)
	assert.Equal(t, model.NotAvailable, got.RatingCount)
}

func TestExtractMovieKeepsNumberLiterals(t *testing.T) {
	item := map[string]any{
		"aggregateRating": map[string]any{
			"ratingValue": json.Number("8.50"),
			"ratingCount": json.Number("12345678"),
		},
	}

	got := ExtractMovie(item, 0)
	assert.Equal(t, "8.50", got.RatingValue)
	assert.Equal(t, "12345678", got.RatingCount)
}

func TestExtractMoviesRanksByPosition(t *testing.T) {
	for _, n := range []int{0, 1, 3, 250} {
		entries := make([]any, n)
		for i := range entries {
			entries[i] = map[string]any{"item": map[string]any{"name": "m"}}
		}

		movies := ExtractMovies(entries)
		if len(movies) != n {
			t.Fatalf("got %d movies, want %d", len(movies), n)
		}
		for i, m := range movies {
			if m.Rank != i+1 {
				t.Errorf("movies[%d].Rank = %d, want %d", i, m.Rank, i+1)
			}
		}
	}
}

func TestExtractMoviesEntryWithoutItem(t *testing.T) {
	movies := ExtractMovies([]any{map[string]any{"position": json.Number("1")}, "junk"})

	if len(movies) != 2 {
		t.Fatalf("got %d movies, want 2", len(movies))
	}
	for i, m := range movies {
		assert.Equal(t, i+1, m.Rank)
		assert.Equal(t, model.NotAvailable, m.Name)
		assert.Equal(t, model.NotAvailable, m.Duration)
	}
}
