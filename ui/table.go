package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Column struct {
	Header   string
	MaxWidth int
}

// Table renders rows as left-aligned columns sized to their content.
type Table struct {
	Columns []Column
	Rows    [][]string
}

func NewTable(columns ...Column) *Table {
	return &Table{Columns: columns}
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = lipgloss.Width(col.Header)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(t.cell(row, i)))
			}
		}
	}

	var b strings.Builder
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = StyleTableHeader.Width(widths[i]).Render(col.Header)
	}
	b.WriteString(strings.Join(headers, "  "))
	b.WriteString("\n")

	for r, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			style := lipgloss.NewStyle().Width(widths[i])
			if r%2 == 1 {
				style = StyleTableRowAlt.Width(widths[i])
			}
			cells[i] = style.Render(t.cell(row, i))
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")
	}
	return b.String()
}

func (t *Table) cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	s := row[i]
	if limit := t.Columns[i].MaxWidth; limit > 3 && len([]rune(s)) > limit {
		s = string([]rune(s)[:limit-3]) + "..."
	}
	return s
}
