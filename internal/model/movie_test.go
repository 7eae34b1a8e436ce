package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieString(t *testing.T) {
	m := Movie{
		Rank:          1,
		Name:          "The Shawshank Redemption",
		Description:   "Two imprisoned men bond.",
		RatingValue:   "9.3",
		RatingCount:   "2900000",
		ContentRating: "R",
		Genre:         "Drama",
		Duration:      "2h22m",
	}

	want := "Rank: 1, Name: The Shawshank Redemption, Description: Two imprisoned men bond., " +
		"IMDb Rating: 9.3, Votes: 2900000, Content Rating: R, Genre: Drama, Duration: 2h22m"
	assert.Equal(t, want, m.String())
}

func TestMovieRowMatchesColumns(t *testing.T) {
	m := Movie{Rank: 7, Name: "x", Description: NotAvailable}
	row := m.Row()

	assert.Len(t, row, len(Columns))
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "x", row[1])
	assert.Equal(t, NotAvailable, row[2])
}
