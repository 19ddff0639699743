package itemui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// styledCell is one rendered rune with its terminal width.
type styledCell struct {
	s       string
	width   int
	isSpace bool
}

func buildCells(text string, style lipgloss.Style) []styledCell {
	out := make([]styledCell, 0, len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' {
			r = ' '
		}
		out = append(out, styledCell{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

func renderCells(cells []styledCell) string {
	var b strings.Builder
	for _, item := range cells {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapCells breaks cells into lines of at most width columns, preferring to
// break at the last space.
func wrapCells(cells []styledCell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var out strings.Builder
	line := make([]styledCell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		item := cells[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledCell{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func wrapText(text string, style lipgloss.Style, width int) string {
	return wrapCells(buildCells(text, style), width)
}

func lineWidthOf(line []styledCell) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledCell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}

// statLine lays out one stat as name, value, bar and base in fixed columns.
func statLine(name string, nameWidth int, value, bar, base string) string {
	label := runewidth.FillRight(runewidth.Truncate(name, nameWidth, "…"), nameWidth)
	line := label + " " + runewidth.FillLeft(value, valueWidth)
	if bar != "" {
		line += " " + bar
	}
	if base != "" {
		line += "  " + base
	}
	return line
}

func nameColumnWidth(names []string, limit int) int {
	w := 0
	for _, n := range names {
		w = max(w, runewidth.StringWidth(n))
	}
	return min(w, limit)
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
