package model

import "fmt"

// NotAvailable replaces any optional field missing from the source record.
const NotAvailable = "N/A"

// Movie is one entry of the Top 250 chart, flattened for tabular output.
type Movie struct {
	Rank          int    `json:"Rank" csv:"Rank"`
	Name          string `json:"Name" csv:"Name"`
	Description   string `json:"Description" csv:"Description"`
	RatingValue   string `json:"IMDb Rating" csv:"IMDb Rating"`
	RatingCount   string `json:"Votes" csv:"Votes"`
	ContentRating string `json:"Content Rating" csv:"Content Rating"`
	Genre         string `json:"Genre" csv:"Genre"`
	Duration      string `json:"Duration" csv:"Duration"`
}

// Columns lists the output field names in column order.
var Columns = []string{
	"Rank",
	"Name",
	"Description",
	"IMDb Rating",
	"Votes",
	"Content Rating",
	"Genre",
	"Duration",
}

// Row returns the movie's fields as strings, in Columns order.
func (m Movie) Row() []string {
	return []string{
		fmt.Sprint(m.Rank),
		m.Name,
		m.Description,
		m.RatingValue,
		m.RatingCount,
		m.ContentRating,
		m.Genre,
		m.Duration,
	}
}

// String renders the movie as a single console line.
func (m Movie) String() string {
	return fmt.Sprintf("Rank: %d, Name: %s, Description: %s, IMDb Rating: %s, Votes: %s, Content Rating: %s, Genre: %s, Duration: %s",
		m.Rank, m.Name, m.Description, m.RatingValue, m.RatingCount, m.ContentRating, m.Genre, m.Duration)
}
