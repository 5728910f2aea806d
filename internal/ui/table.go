package ui

import "strings"

// Table renders minimal aligned columns without borders.
type Table struct {
	rows       [][]string
	colWidths  []int
	colPadding int
	maxWidth   int
}

// NewTable creates a table with the given number of columns. maxWidth
// bounds the rendered line width; 0 means unbounded.
func NewTable(cols, maxWidth int) *Table {
	return &Table{
		colWidths:  make([]int, cols),
		colPadding: 2,
		maxWidth:   maxWidth,
	}
}

// AddRow adds a row, tracking per-column widths.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		row[i] = cells[i]
		if w := len([]rune(cells[i])); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the table.
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	padding := strings.Repeat(" ", t.colPadding)
	var sb strings.Builder
	for _, row := range t.rows {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString(padding)
			}
			if i < len(row)-1 {
				line.WriteString(cell)
				line.WriteString(strings.Repeat(" ", t.colWidths[i]-len([]rune(cell))))
			} else {
				line.WriteString(cell)
			}
		}
		rendered := strings.TrimRight(line.String(), " ")
		if t.maxWidth > 0 {
			if runes := []rune(rendered); len(runes) > t.maxWidth {
				rendered = string(runes[:t.maxWidth-1]) + "…"
			}
		}
		sb.WriteString(rendered)
		sb.WriteString("\n")
	}
	return sb.String()
}
