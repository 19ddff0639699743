package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// textTable lays out rows of cells in padded columns.
type textTable struct {
	headers    []string
	rows       [][]string
	rightAlign map[int]bool
}

func (t *textTable) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// lines renders the header, a rule, and every row. The rule is omitted when
// there are no headers.
func (t *textTable) lines() []string {
	widths := t.columnWidths()
	if len(widths) == 0 {
		return nil
	}
	lines := make([]string, 0, len(t.rows)+2)
	if len(t.headers) > 0 {
		lines = append(lines, t.formatRow(t.headers, widths))
		rule := make([]string, len(widths))
		for i, w := range widths {
			rule[i] = strings.Repeat("-", w)
		}
		lines = append(lines, strings.Join(rule, " "))
	}
	for _, row := range t.rows {
		lines = append(lines, t.formatRow(row, widths))
	}
	return lines
}

func (t *textTable) columnWidths() []int {
	cols := len(t.headers)
	for _, row := range t.rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for i, h := range t.headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	return widths
}

func (t *textTable) formatRow(row []string, widths []int) string {
	cells := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = padCell(cell, w, t.rightAlign[i])
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	padding := width - displayWidth(value)
	if padding <= 0 {
		return value
	}
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
