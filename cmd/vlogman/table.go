package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"vlogman/internal/ledger"
	"vlogman/internal/season"
)

type column struct {
	header string
	align  text.Align
}

func newListing(columns []column) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.header
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	return tw
}

// seasonRow is one season directory with the number of episodes inside it.
type seasonRow struct {
	dir      season.Directory
	episodes int
}

// writeSeasonTable lists seasons in resolver order. The last row is the season
// an episode without -s lands in; it is highlighted and named in the caption.
func writeSeasonTable(out io.Writer, rows []seasonRow) {
	highlight := lipgloss.NewRenderer(out).NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	tw := newListing([]column{
		{header: "Season", align: text.AlignRight},
		{header: "Directory", align: text.AlignLeft},
		{header: "Episodes", align: text.AlignRight},
	})
	for i, row := range rows {
		name := row.dir.Name
		if i == len(rows)-1 {
			name = highlight.Render(name)
		}
		tw.AppendRow(table.Row{row.dir.Number, name, strconv.Itoa(row.episodes)})
	}
	if len(rows) > 0 {
		tw.SetCaption("default season: %s", rows[len(rows)-1].dir.Name)
	}
	fmt.Fprintln(out, tw.Render())
}

// writeHistoryTable lists ledger entries newest first with the database
// location and schema version underneath.
func writeHistoryTable(out io.Writer, entries []ledger.Entry, path string, schema int) {
	tw := newListing([]column{
		{header: "Created", align: text.AlignLeft},
		{header: "Date", align: text.AlignLeft},
		{header: "Season", align: text.AlignRight},
		{header: "Episode", align: text.AlignRight},
		{header: "Title", align: text.AlignLeft},
		{header: "Directory", align: text.AlignLeft},
	})
	for _, entry := range entries {
		tw.AppendRow(table.Row{
			entry.CreatedAt.Local().Format(time.DateTime),
			entry.RecordedOn,
			entry.Season,
			dashIfEmpty(entry.Episode),
			dashIfEmpty(entry.Title),
			entry.EpisodeDir,
		})
	}
	tw.SetCaption("ledger %s (schema v%d)", path, schema)
	fmt.Fprintln(out, tw.Render())
}

// writeTemplateTable shows which template paths config validate found.
func writeTemplateTable(out io.Writer, rows [][]string) {
	tw := newListing([]column{
		{header: "Template", align: text.AlignLeft},
		{header: "Path", align: text.AlignLeft},
		{header: "Present", align: text.AlignLeft},
	})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1], row[2]})
	}
	fmt.Fprintln(out, tw.Render())
}

func dashIfEmpty(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
