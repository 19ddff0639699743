package stats

import (
	"sort"

	"github.com/verte-zerg/itemstats/internal/model"
)

// PlugStats is how much one plug option changes each stat it touches, in
// the context of the item it is socketed into.
type PlugStats struct {
	SocketIndex int
	PlugHash    uint32
	Stats       map[model.StatHash]int
}

// enhanceStatsWithPlugs folds the plugged perks and mods into the investment
// stats and returns the new set together with per-plug stat deltas.
func (b *Builder) enhanceStatsWithPlugs(item *model.Item, itemDef *model.ItemDefinition, in statSet, group *model.StatGroupDefinition, displays statDisplays) (statSet, []PlugStats) {
	if item.Sockets == nil || len(item.Sockets.AllSockets) == 0 {
		return in, nil
	}

	out := in.clone()
	modified := map[model.StatHash]struct{}{}

	for _, socket := range item.Sockets.AllSockets {
		if socket.Plugged == nil || socket.Plugged.Def == nil {
			continue
		}
		plugDef := socket.Plugged.Def
		for _, perkStat := range plugDef.InvestmentStats {
			hash := perkStat.StatTypeHash
			if !b.isActive(item, plugDef.Hash, hash, perkStat.IsConditionallyActive) {
				continue
			}

			if stat, ok := out.get(hash); ok {
				stat.InvestmentValue += perkStat.Value
				out.put(stat)
			} else if shouldShowStat(itemDef, hash, displays) && perkStat.Value != 0 {
				// The stat only exists because of this plug.
				if def, ok := b.defs.Stat(hash); ok {
					out.put(buildStat(perkStat, group, def, displays))
				}
			}
			modified[hash] = struct{}{}
		}
	}

	for hash := range modified {
		stat, ok := out.get(hash)
		if !ok {
			continue
		}
		if display := displays[hash]; display != nil {
			stat.Value = Interpolate(stat.InvestmentValue, display)
		} else {
			stat.Value = min(stat.InvestmentValue, stat.MaximumValue)
		}
		out.put(stat)
	}

	return out, buildAllPlugStats(item.Sockets, out, displays)
}

// buildAllPlugStats visits sockets with fewer options first, so contributions
// from sockets that cannot be changed are attributed before swappable ones.
func buildAllPlugStats(sockets *model.Sockets, set statSet, displays statDisplays) []PlugStats {
	sorted := make([]*model.Socket, len(sockets.AllSockets))
	copy(sorted, sockets.AllSockets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].PlugOptions) < len(sorted[j].PlugOptions)
	})

	var out []PlugStats
	for _, socket := range sorted {
		for _, plug := range socket.PlugOptions {
			if plug == nil || plug.Def == nil || len(plug.Def.InvestmentStats) == 0 {
				continue
			}
			out = append(out, PlugStats{
				SocketIndex: socket.Index,
				PlugHash:    plug.Def.Hash,
				Stats:       buildPlugStats(plug, set, displays),
			})
		}
	}
	return out
}

// buildPlugStats computes, for each stat the plug modifies, how much it
// modifies that stat.
func buildPlugStats(plug *model.Plug, set statSet, displays statDisplays) map[model.StatHash]int {
	stats := make(map[model.StatHash]int, len(plug.Def.InvestmentStats))
	for _, perkStat := range plug.Def.InvestmentStats {
		value := perkStat.Value
		itemStat, ok := set.get(perkStat.StatTypeHash)
		display := displays[perkStat.StatTypeHash]
		switch {
		case ok && display != nil:
			// A scaled stat has to be scaled in the context of the item's own
			// investment value: the contribution is the difference between the
			// total and what the total would be without this plug.
			withoutPlug := Interpolate(itemStat.InvestmentValue-value, display)
			value = itemStat.Value - withoutPlug
		case ok:
			withoutPlug := min(itemStat.InvestmentValue-value, itemStat.MaximumValue)
			value = itemStat.Value - withoutPlug
		}
		stats[perkStat.StatTypeHash] = value
	}
	return stats
}
