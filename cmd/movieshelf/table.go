package main

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/handiism/movieshelf/internal/logging"
	"github.com/handiism/movieshelf/internal/model"
)

// renderMovies renders movies as a table. Terminals get rounded borders and
// a colored header; pipes get plain ASCII.
func renderMovies(out io.Writer, movies []model.Movie) string {
	tw := table.NewWriter()
	if logging.IsTerminal(out) {
		tw.SetStyle(table.StyleRounded)
		tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"#", "Name", "Year", "Genre"})
	for i, m := range movies {
		tw.AppendRow(table.Row{i + 1, m.Name, strconv.Itoa(m.ReleaseYear), m.Genre.String()})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	tw.AppendFooter(table.Row{"", plural(len(movies), "movie"), "", ""})

	return tw.Render()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
