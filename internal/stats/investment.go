package stats

import "github.com/verte-zerg/itemstats/internal/model"

// buildInvestmentStats builds stats from the definition's raw "investment"
// values. Unlike the precalculated values the API reports for instances,
// these expose hidden stats at their true value and let us work out what
// each perk and mod contributes.
func (b *Builder) buildInvestmentStats(itemDef *model.ItemDefinition, group *model.StatGroupDefinition, displays statDisplays) statSet {
	set := newStatSet(len(itemDef.InvestmentStats))
	for _, itemStat := range itemDef.InvestmentStats {
		if !shouldShowStat(itemDef, itemStat.StatTypeHash, displays) {
			continue
		}
		def, ok := b.defs.Stat(itemStat.StatTypeHash)
		if !ok {
			continue
		}
		set.put(buildStat(itemStat, group, def, displays))
	}
	return set
}
