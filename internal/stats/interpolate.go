package stats

import (
	"math"

	"github.com/verte-zerg/itemstats/internal/model"
)

// Interpolate maps a raw investment value through the display's piecewise
// linear curve and rounds it the way the game does.
//
// Values above the display maximum are clamped. Negative armor stat values
// (from mods that subtract) extrapolate along the last segment.
func Interpolate(value int, display *model.StatDisplay) int {
	interp := display.DisplayInterpolation
	if value > display.MaximumValue {
		value = display.MaximumValue
	}
	if len(interp) == 0 {
		return value
	}

	endIndex := -1
	for i, p := range interp {
		if p.Value > value {
			endIndex = i
			break
		}
	}
	if endIndex < 0 || (value < 0 && model.IsArmorStat(display.StatHash)) {
		endIndex = len(interp) - 1
	}
	startIndex := max(0, endIndex-1)

	start := interp[startIndex]
	end := interp[endIndex]
	span := end.Value - start.Value
	if span == 0 {
		return start.Weight
	}

	t := float64(value-start.Value) / float64(span)
	interpValue := float64(start.Weight) + t*float64(end.Weight-start.Weight)

	// Magazine size is believed not to use banker's rounding; every other stat does.
	if display.StatHash == model.StatMagazine {
		return int(math.Round(interpValue))
	}
	return int(math.RoundToEven(interpValue))
}
