package scraper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"imdb-top250/internal/model"
)

// ExtractMovies maps itemListElement entries to movies. Each entry's "item"
// record is used; entries without one yield a movie with only a rank.
func ExtractMovies(entries []any) []model.Movie {
	movies := make([]model.Movie, 0, len(entries))
	for i, entry := range entries {
		movies = append(movies, ExtractMovie(record(record(entry)["item"]), i))
	}
	return movies
}

// ExtractMovie builds the movie at 0-based position index from a schema.org
// Movie record.
func ExtractMovie(item map[string]any, index int) model.Movie {
	rating := record(item["aggregateRating"])

	return model.Movie{
		Rank:          index + 1,
		Name:          fieldOr(item, "name"),
		Description:   fieldOr(item, "description"),
		RatingValue:   fieldOr(rating, "ratingValue"),
		RatingCount:   fieldOr(rating, "ratingCount"),
		ContentRating: fieldOr(item, "contentRating"),
		Genre:         fieldOr(item, "genre"),
		Duration:      duration(item),
	}
}

// duration turns an ISO-8601 duration such as "PT2H22M" into "2h22m".
func duration(item map[string]any) string {
	v, ok := stringField(item, "duration")
	if !ok || v == "" {
		return model.NotAvailable
	}
	return strings.ToLower(strings.TrimPrefix(v, "PT"))
}

func fieldOr(rec map[string]any, key string) string {
	if v, ok := stringField(rec, key); ok {
		return v
	}
	return model.NotAvailable
}

// stringField reports the value at key coerced to a string. Missing keys and
// JSON nulls report false.
func stringField(rec map[string]any, key string) (string, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return "", false
	}
	return stringify(v), true
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, el := range x {
			if el == nil {
				continue
			}
			parts = append(parts, stringify(el))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

// record returns v as a JSON object, or an empty one.
func record(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
