package stats

import (
	"sort"

	"github.com/verte-zerg/itemstats/internal/model"
)

// plugContributions splits the plugged stat contributions of an item into the
// ones that currently count and the ones that are conditionally inactive.
type plugContributions struct {
	active           map[model.StatHash]int
	inactive         map[model.StatHash]int
	negativeModFound bool
}

func (b *Builder) sumPlugContributions(item *model.Item) plugContributions {
	c := plugContributions{
		active:   map[model.StatHash]int{},
		inactive: map[model.StatHash]int{},
	}
	if item.Sockets == nil {
		return c
	}
	for _, socket := range item.Sockets.AllSockets {
		if socket.Plugged == nil || socket.Plugged.Def == nil {
			continue
		}
		plugDef := socket.Plugged.Def
		for _, s := range plugDef.InvestmentStats {
			if !b.isActive(item, plugDef.Hash, s.StatTypeHash, s.IsConditionallyActive) {
				c.inactive[s.StatTypeHash] += s.Value
				continue
			}
			c.active[s.StatTypeHash] += s.Value
			if s.Value < 0 {
				c.negativeModFound = true
			}
		}
	}
	return c
}

// buildLiveStats builds stats from the values the API precomputed for an
// instance. Armor needs this because its stats are rolled per instance. The
// live value includes every mod, active or not.
func (b *Builder) buildLiveStats(live model.LiveStats, itemDef *model.ItemDefinition, item *model.Item, group *model.StatGroupDefinition, displays statDisplays) statSet {
	contrib := b.sumPlugContributions(item)
	isClassItem := item.Bucket.Hash == model.BucketClassItem

	hashes := make([]model.StatHash, 0, len(live))
	for h := range live {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	set := newStatSet(len(hashes))
	for _, hash := range hashes {
		if !shouldShowStat(itemDef, hash, displays) {
			continue
		}
		def, ok := b.defs.Stat(hash)
		if !ok {
			continue
		}

		liveValue := live[hash]
		traits := traitsFor(hash, group, displays[hash])
		value := liveValue - contrib.inactive[hash]

		base := value - contrib.active[hash]
		if isClassItem {
			base = 0
		}

		set.put(model.DimStat{
			StatHash:          hash,
			DisplayProperties: def.DisplayProperties,
			Sort:              SortRank(hash),
			InvestmentValue:   liveValue,
			Value:             value,
			Base:              base,
			// A class item's base is always 0, so it is never wrong. Otherwise
			// a 0 next to a negative mod may have been clamped.
			StatMayBeWrong:  !isClassItem && contrib.negativeModFound && liveValue == 0,
			MaximumValue:    traits.maximumValue,
			Bar:             traits.bar,
			SmallerIsBetter: traits.smallerIsBetter,
			Additive:        def.AggregationType == model.AggregationTypeCharacter,
		})
	}
	return set
}
