package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/itemstats/internal/model"
)

// Series is a named sequence of y values sampled at evenly spaced x values.
type Series struct {
	Name   string
	Values []float64
}

type lineStyle struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelWidth      = 5
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var colorPalette = []string{
	"\x1b[36m", // cyan
	"\x1b[33m", // yellow
	"\x1b[35m", // magenta
}

// CurveSeries samples a display curve at every raw value from 0 to the
// display maximum. The second series is the identity line, for comparison.
func CurveSeries(display *model.StatDisplay) []Series {
	n := max(display.MaximumValue, 1) + 1
	curve := make([]float64, n)
	raw := make([]float64, n)
	for v := 0; v < n; v++ {
		curve[v] = float64(Interpolate(v, display))
		raw[v] = float64(v)
	}
	return []Series{
		{Name: "display", Values: curve},
		{Name: "raw", Values: raw},
	}
}

// RenderCurve plots the interpolation curve of one stat display.
func RenderCurve(w io.Writer, title string, display *model.StatDisplay, width, height int, forceColor bool) error {
	if len(display.DisplayInterpolation) == 0 {
		_, err := fmt.Fprintln(w, "No interpolation table.")
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, p := range display.DisplayInterpolation {
		if _, err := fmt.Fprintf(w, "  %4d -> %d\n", p.Value, p.Weight); err != nil {
			return err
		}
	}
	return PlotSeries(w, CurveSeries(display), width, height, forceColor)
}

// PlotSeries renders a braille plot of the series on a shared y axis.
func PlotSeries(w io.Writer, series []Series, width, height int, forceColor bool) error {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	lo, hi := math.Inf(1), math.Inf(-1)
	scaled := make([]Series, len(series))
	for i, s := range series {
		scaled[i] = Series{Name: s.Name, Values: resampleSeries(s.Values, width)}
		for _, v := range scaled[i].Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}

	layers := make([]*canvas, len(scaled))
	for i, s := range scaled {
		layers[i] = newCanvas(width, height)
		layers[i].trace(s.Values, lo, hi, lineStyles[i%len(lineStyles)])
	}

	useColor := shouldUseColor(w, forceColor)
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", axisLabelWidth, axisLabel(y, height, lo, hi), axisSeparator)
		for x := 0; x < width; x++ {
			mask, layer := composeCell(layers, x, y)
			ch := rune(0x2800 + int(mask))
			if useColor && layer >= 0 {
				row.WriteString(colorPalette[layer%len(colorPalette)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
				continue
			}
			row.WriteRune(ch)
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, renderLegend(scaled, useColor))
	return err
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	return max(totalWidth-axisLabelWidth-len([]rune(axisSeparator)), minPlotWidth)
}

func axisLabel(row, height int, lo, hi float64) string {
	switch {
	case row == 0:
		return fmt.Sprintf("%.0f", hi)
	case row == height-1:
		return fmt.Sprintf("%.0f", lo)
	case height > 2 && row == height/2:
		return fmt.Sprintf("%.0f", (hi+lo)/2)
	}
	return ""
}

// canvas is a grid of braille cells, each 2 dots wide and 4 dots tall.
type canvas struct {
	cells [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &canvas{cells: cells}
}

func (c *canvas) trace(values []float64, lo, hi float64, style lineStyle) {
	dotRows := len(c.cells) * 4
	prevX, prevY := -1, -1
	for x, v := range values {
		px, py := x*2, valueToRow(v, lo, hi, dotRows)
		if prevX < 0 {
			if style.shouldPlot(px) {
				c.set(px, py)
			}
		} else {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				if style.shouldPlot(dx) {
					c.set(dx, dy)
				}
			})
		}
		prevX, prevY = px, py
	}
}

func (c *canvas) set(x, y int) {
	cellY, cellX := y/4, x/2
	if x < 0 || y < 0 || cellY >= len(c.cells) || cellX >= len(c.cells[cellY]) {
		return
	}
	c.cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func composeCell(layers []*canvas, x, y int) (uint8, int) {
	var mask uint8
	first := -1
	for i, l := range layers {
		m := l.cells[y][x]
		if m == 0 {
			continue
		}
		if first < 0 {
			first = i
		}
		mask |= m
	}
	return mask, first
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// resampleSeries fits values to width columns: averaging buckets when
// shrinking, linear interpolation when stretching.
func resampleSeries(values []float64, width int) []float64 {
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func valueToRow(v, lo, hi float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - lo) / (hi - lo)
	row := int(math.Round((1 - pos) * float64(height-1)))
	return min(max(row, 0), height-1)
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", rune(0x2801), s.Name, lineStyles[i%len(lineStyles)].name)
		if useColor {
			label = colorPalette[i%len(colorPalette)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func brailleDotMask(x, y int) uint8 {
	if y == 3 {
		return 0x40 << x
	}
	return 1 << (y + 3*x)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
