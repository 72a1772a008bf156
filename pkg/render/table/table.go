// Package table renders download rows as plain text, Markdown or CSV.
//
// Plain output is the long-form rows sorted by (label, date). Markdown and
// CSV pivot to one row per date and one column per label, zero-filling
// missing cells.
package table

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/matzehuels/pepystats/pkg/downloads"
)

const (
	// NoData is the plain rendering of an empty row set.
	NoData = "no data"

	// NoDataMarkdown is the Markdown rendering of an empty row set.
	NoDataMarkdown = "_no data_"

	dateHeader = "date"
)

// Plain renders rows sorted by (label, date) as aligned columns.
func Plain(rows downloads.Rows) (string, error) {
	if len(rows) == 0 {
		return NoData, nil
	}

	var b strings.Builder
	t := tablewriter.NewTable(&b,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.Border{Left: tw.Off, Right: tw.Off, Top: tw.Off, Bottom: tw.Off},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenRows: tw.Off, BetweenColumns: tw.Off},
				Lines:      tw.Lines{ShowHeaderLine: tw.Off},
			},
		})))
	t.Configure(func(c *tablewriter.Config) {
		pad := tw.Padding{Right: " ", Overwrite: true}
		c.Header.Formatting.AutoFormat = tw.Off
		c.Header.Padding.Global = pad
		c.Row.Padding.Global = pad
		c.Header.Alignment.Global = tw.AlignRight
		c.Row.Alignment.Global = tw.AlignRight
	})
	t.Header([]string{dateHeader, "downloads", "label"})
	for _, r := range downloads.SortByLabelDate(rows) {
		if err := t.Append([]string{downloads.FormatDate(r.Date), strconv.FormatInt(r.Downloads, 10), r.Label}); err != nil {
			return "", err
		}
	}
	if err := t.Render(); err != nil {
		return "", err
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n"), nil
}

// Markdown renders the pivoted rows as a Markdown table.
func Markdown(rows downloads.Rows) string {
	m := downloads.Pivot(rows)
	if m.Empty() {
		return NoDataMarkdown
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := lgtable.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers(escapePipes(header(m))...).
		Rows(body(m)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col > 0 && row != lgtable.HeaderRow {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})
	return strings.TrimRight(t.Render(), "\n")
}

// escapePipes escapes "|" so labels cannot split a Markdown cell.
// Body cells are dates and numbers and never need it.
func escapePipes(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}

func header(m *downloads.Matrix) []string {
	return append([]string{dateHeader}, m.Labels...)
}

func body(m *downloads.Matrix) [][]string {
	out := make([][]string, len(m.Dates))
	for i, d := range m.Dates {
		rec := make([]string, 0, len(m.Labels)+1)
		rec = append(rec, downloads.FormatDate(d))
		for _, v := range m.Values[i] {
			rec = append(rec, strconv.FormatInt(v, 10))
		}
		out[i] = rec
	}
	return out
}
