package stats

import "github.com/verte-zerg/itemstats/internal/model"

// buildClassItemStatsFromMods builds class item stats from the masterwork and
// mod sockets. Class items have no rolled stats, so the mods are everything.
func (b *Builder) buildClassItemStatsFromMods(item *model.Item, group *model.StatGroupDefinition, displays statDisplays) statSet {
	tracker := make(map[model.StatHash]int, len(model.ArmorStats))
	for _, hash := range model.ArmorStats {
		tracker[hash] = 0
	}

	sockets := modSockets(item.Sockets)
	// There should only be one masterwork socket.
	if mw := socketsWithStyle(item.Sockets, model.SocketStyleEnergyMeter); len(mw) > 0 {
		sockets = append(sockets, mw[0])
	}

	for _, socket := range sockets {
		if socket.Plugged == nil || socket.Plugged.Def == nil {
			continue
		}
		plugDef := socket.Plugged.Def
		for _, hash := range model.ArmorStats {
			s, ok := plugDef.InvestmentStat(hash)
			if !ok || s.Value == 0 {
				continue
			}
			if b.isActive(item, plugDef.Hash, hash, s.IsConditionallyActive) {
				tracker[hash] += s.Value
			}
		}
	}

	set := newStatSet(len(model.ArmorStats) + 1)
	for _, hash := range model.ArmorStats {
		def, ok := b.defs.Stat(hash)
		if !ok {
			def = &model.StatDefinition{Hash: hash}
		}
		stat := buildStat(model.InvestmentStat{
			StatTypeHash: hash,
			Value:        max(0, tracker[hash]),
		}, group, def, displays)
		stat.MaximumValue = model.ArmorStatCap
		stat.Base = 0
		set.put(stat)
	}
	set.put(totalStat(set.list()))
	return set
}

// modSockets returns the sockets holding an armor mod.
func modSockets(sockets *model.Sockets) []*model.Socket {
	if sockets == nil {
		return nil
	}
	var out []*model.Socket
	for _, s := range sockets.AllSockets {
		if s.Plugged != nil && s.Plugged.Def.HasCategory(model.CategoryArmorMods) {
			out = append(out, s)
		}
	}
	return out
}

func socketsWithStyle(sockets *model.Sockets, style model.SocketCategoryStyle) []*model.Socket {
	if sockets == nil {
		return nil
	}
	var out []*model.Socket
	for _, s := range sockets.AllSockets {
		if s.CategoryStyle == style {
			out = append(out, s)
		}
	}
	return out
}
