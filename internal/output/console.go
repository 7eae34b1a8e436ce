package output

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"imdb-top250/internal/model"
)

// Console formats.
const (
	FormatLines = "lines"
	FormatTable = "table"
)

// Print writes movies to w, one line per movie or as a table.
func Print(w io.Writer, movies []model.Movie, format string) error {
	switch format {
	case FormatLines, "":
		for _, m := range movies {
			if _, err := fmt.Fprintln(w, m.String()); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		_, err := fmt.Fprintln(w, renderTable(movies))
		return err
	default:
		return fmt.Errorf("unsupported console format %q", format)
	}
}

func renderTable(movies []model.Movie) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(model.Columns))
	for i, c := range model.Columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	for _, m := range movies {
		cells := m.Row()
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		tw.AppendRow(row)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, WidthMax: 60},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	return tw.Render()
}
