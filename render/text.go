package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spektr-org/pokedata/dashboard"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	columnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).MarginTop(1)
	headingStyle = lipgloss.NewStyle().Bold(true)
	headerCell   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell         = lipgloss.NewStyle().Padding(0, 1)
)

// WriteText writes d as a terminal report: one bordered table per panel,
// grouped under the column titles. Charts print their underlying data.
func WriteText(w io.Writer, d *dashboard.Dashboard) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title) + "\n")
	b.WriteString(mutedStyle.Render(d.Description) + "\n")
	b.WriteString(d.Summary + "\n")

	for _, col := range d.Columns {
		b.WriteString(columnStyle.Render(col.Title) + "\n")
		for _, p := range col.Panels {
			b.WriteString("\n" + headingStyle.Render(p.Heading) + "\n")
			b.WriteString(panelTable(&p) + "\n")
		}
	}

	_, err := fmt.Fprint(w, b.String())
	return err
}

func panelTable(p *dashboard.Panel) string {
	headers, rows := panelRows(p)
	if len(rows) == 0 {
		return mutedStyle.Render("(no data)")
	}

	numeric := make([]bool, len(headers))
	if p.Table != nil {
		for i, c := range p.Table.Columns {
			numeric[i] = c.Align == "right"
		}
	} else {
		for i := 1; i < len(numeric); i++ {
			numeric[i] = true
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cell
			if row == table.HeaderRow {
				style = headerCell
			}
			if col < len(numeric) && numeric[col] {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
	return t.String()
}
