package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/itemstats/internal/model"
)

const (
	defaultBarWidth = 20
	barFull         = "█"
	barEmpty        = "░"
	mayBeWrongMark  = "*"
)

// Bar renders value as a fixed-width horizontal bar relative to maximum.
func Bar(value, maximum, width int) string {
	if width <= 0 {
		width = defaultBarWidth
	}
	filled := 0
	if maximum > 0 {
		filled = value * width / maximum
	}
	filled = min(max(filled, 0), width)
	return strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, width-filled)
}

// FormatValue formats a stat value with its unit.
func FormatValue(s model.DimStat) string {
	v := strconv.Itoa(s.Value)
	if IsMillisecondStat(s.StatHash) {
		v += "ms"
	}
	if s.StatMayBeWrong {
		v += mayBeWrongMark
	}
	return v
}

// StatName returns the display name of a stat, falling back to its hash.
func StatName(s model.DimStat) string {
	if s.DisplayProperties.Name != "" {
		return s.DisplayProperties.Name
	}
	return fmt.Sprintf("#%d", s.StatHash)
}

// RenderStats prints the stats of one item as a table with bars.
func RenderStats(w io.Writer, title string, stats []model.DimStat, barWidth int) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "No stats.")
		return err
	}

	tbl := textTable{
		headers:    []string{"Stat", "Value", "Base", "", "Notes"},
		rightAlign: map[int]bool{1: true, 2: true},
	}
	mayBeWrong := false
	for _, s := range stats {
		bar := ""
		if s.Bar {
			bar = Bar(s.Value, s.MaximumValue, barWidth)
		}
		tbl.addRow(StatName(s), FormatValue(s), strconv.Itoa(s.Base), bar, statNotes(s))
		mayBeWrong = mayBeWrong || s.StatMayBeWrong
	}
	for _, line := range tbl.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if mayBeWrong {
		if _, err := fmt.Fprintln(w, mayBeWrongMark+" a negative mod may have hidden part of this stat's base value"); err != nil {
			return err
		}
	}
	return nil
}

func statNotes(s model.DimStat) string {
	var notes []string
	if s.SmallerIsBetter {
		notes = append(notes, "lower is better")
	}
	if s.Additive {
		notes = append(notes, "additive")
	}
	if s.IsConditionallyActive {
		notes = append(notes, "conditional")
	}
	return strings.Join(notes, ", ")
}

// RenderPlugStats prints what each plug option contributes. plugName and
// statName resolve display names.
func RenderPlugStats(w io.Writer, plugs []PlugStats, plugName func(uint32) string, statName func(model.StatHash) string) error {
	if len(plugs) == 0 {
		return nil
	}
	tbl := textTable{
		headers:    []string{"Socket", "Plug", "Stat", "Delta"},
		rightAlign: map[int]bool{0: true, 3: true},
	}
	for _, p := range plugs {
		hashes := make([]model.StatHash, 0, len(p.Stats))
		for h := range p.Stats {
			hashes = append(hashes, h)
		}
		sort.Slice(hashes, func(i, j int) bool {
			return SortRank(hashes[i]) < SortRank(hashes[j])
		})
		for _, h := range hashes {
			tbl.addRow(strconv.Itoa(p.SocketIndex), plugName(p.PlugHash), statName(h), fmt.Sprintf("%+d", p.Stats[h]))
		}
	}
	for _, line := range tbl.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ItemSummary is one row of an inventory overview.
type ItemSummary struct {
	ID    string
	Name  string
	Stats []model.DimStat
}

// RenderSummary prints one row per item with its armor stats and totals.
func RenderSummary(w io.Writer, items []ItemSummary) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No items found.")
		return err
	}
	columns := append(append([]model.StatHash{}, model.ArmorStats...), model.StatTotal, model.StatCustomTotal)
	headers := []string{"ID", "Item"}
	rightAlign := map[int]bool{}
	for i, h := range columns {
		headers = append(headers, columnLabel(h))
		rightAlign[i+2] = true
	}
	tbl := textTable{headers: headers, rightAlign: rightAlign}
	for _, item := range items {
		byHash := make(map[model.StatHash]model.DimStat, len(item.Stats))
		for _, s := range item.Stats {
			byHash[s.StatHash] = s
		}
		row := []string{item.ID, item.Name}
		for _, h := range columns {
			if s, ok := byHash[h]; ok {
				row = append(row, FormatValue(s))
			} else {
				row = append(row, "-")
			}
		}
		tbl.addRow(row...)
	}
	for _, line := range tbl.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

var columnLabels = map[model.StatHash]string{
	model.StatMobility:    "Mob",
	model.StatResilience:  "Res",
	model.StatRecovery:    "Rec",
	model.StatDiscipline:  "Dis",
	model.StatIntellect:   "Int",
	model.StatStrength:    "Str",
	model.StatTotal:       "Total",
	model.StatCustomTotal: "Custom",
}

func columnLabel(h model.StatHash) string {
	if l, ok := columnLabels[h]; ok {
		return l
	}
	return strconv.FormatInt(int64(h), 10)
}
