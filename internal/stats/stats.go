// Package stats computes the displayed stats of items from manifest
// definitions, socketed plugs, and live instance data, and renders them.
//
// Building runs as a short pipeline:
//
//	investment stats   raw definition values, interpolated for display
//	plug enhancement   add the plugged perks and mods
//	live stats         armor only: rely on what the API reports instead
//	totals             armor only: Total and the class's Custom Total
//
// Class items with energy skip all of that and are built from their mods.
package stats

import "github.com/verte-zerg/itemstats/internal/model"

// Builder builds item stats. It holds no mutable state and is safe for
// concurrent use.
type Builder struct {
	defs     Definitions
	isActive PlugStatActiveFunc
}

// NewBuilder returns a Builder. A nil isActive treats every plug stat as active.
func NewBuilder(defs Definitions, isActive PlugStatActiveFunc) *Builder {
	if isActive == nil {
		isActive = AlwaysActive
	}
	return &Builder{defs: defs, isActive: isActive}
}

// Input is everything needed to build the stats of one item.
type Input struct {
	Item    *model.Item
	ItemDef *model.ItemDefinition
	// Live maps instance IDs to their API stat snapshot. It may be nil, for
	// example for vendor previews.
	Live map[string]model.LiveStats
	// CustomTotal is the custom total stat selection for the item's class.
	CustomTotal []model.StatHash
}

// Result is the built stats of an item plus what each plug option would
// contribute.
type Result struct {
	Stats     []model.DimStat
	PlugStats []PlugStats
}

type itemKind int

const (
	kindGeneric itemKind = iota
	kindArmor
	kindClassItem
)

func classify(item *model.Item) itemKind {
	switch {
	case item.Type == model.ItemTypeClassItem && item.Energy != nil && item.Sockets != nil:
		return kindClassItem
	case item.Bucket.InArmor:
		return kindArmor
	default:
		return kindGeneric
	}
}

// BuildStats returns the sorted stats of an item, or nil if it has none.
func (b *Builder) BuildStats(in Input) []model.DimStat {
	res := b.Build(in)
	if res == nil {
		return nil
	}
	return res.Stats
}

// Build returns the stats of an item and its plug stat deltas, or nil when
// the item has no stats.
func (b *Builder) Build(in Input) *Result {
	item, itemDef := in.Item, in.ItemDef
	if item == nil || itemDef == nil || itemDef.Stats == nil || itemDef.Stats.StatGroupHash == 0 {
		return nil
	}
	group, ok := b.defs.StatGroup(itemDef.Stats.StatGroupHash)
	if !ok {
		return nil
	}
	displays := newStatDisplays(group)

	var (
		set       statSet
		plugStats []PlugStats
	)
	switch classify(item) {
	case kindClassItem:
		// Class item stats always come from the mods since the base is known to be 0.
		set = b.buildClassItemStatsFromMods(item, group, displays)
	case kindArmor:
		set, plugStats = b.buildFromDefinition(item, itemDef, group, displays)
		if live, ok := b.liveFor(item, in.Live); ok {
			// Armor always uses live stats when there are any.
			set = b.buildLiveStats(live, itemDef, item, group, displays)
			if built := set.list(); len(built) > 0 {
				set.put(totalStat(built))
				if custom, ok := customStat(built, in.CustomTotal); ok {
					set.put(custom)
				}
			}
		}
	default:
		set, plugStats = b.buildFromDefinition(item, itemDef, group, displays)
		if set.len() == 0 {
			if live, ok := b.liveFor(item, in.Live); ok {
				set = b.buildLiveStats(live, itemDef, item, group, displays)
			}
		}
	}

	if set.len() == 0 {
		return nil
	}
	return &Result{
		Stats:     sortStats(set.list()),
		PlugStats: plugStats,
	}
}

func (b *Builder) buildFromDefinition(item *model.Item, itemDef *model.ItemDefinition, group *model.StatGroupDefinition, displays statDisplays) (statSet, []PlugStats) {
	set := b.buildInvestmentStats(itemDef, group, displays)
	return b.enhanceStatsWithPlugs(item, itemDef, set, group, displays)
}

// liveFor returns the live snapshot of an instance. Class items never use
// live stats.
func (b *Builder) liveFor(item *model.Item, live map[string]model.LiveStats) (model.LiveStats, bool) {
	if item.Type == model.ItemTypeClassItem || item.ID == "" {
		return nil, false
	}
	snapshot, ok := live[item.ID]
	return snapshot, ok && snapshot != nil
}
