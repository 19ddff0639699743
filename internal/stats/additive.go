package stats

import "github.com/verte-zerg/itemstats/internal/model"

// SumAdditive adds up the additive stats of a set of equipped items, as a
// character would see them with all of that gear on. Non-additive stats are
// ignored. The result is sorted like item stats.
func SumAdditive(items [][]model.DimStat) []model.DimStat {
	set := newStatSet(len(model.ArmorStats))
	for _, stats := range items {
		for _, s := range stats {
			if !s.Additive {
				continue
			}
			sum, ok := set.get(s.StatHash)
			if !ok {
				sum = model.DimStat{
					StatHash:          s.StatHash,
					DisplayProperties: s.DisplayProperties,
					Sort:              s.Sort,
					Bar:               false,
					Additive:          true,
				}
			}
			sum.InvestmentValue += s.InvestmentValue
			sum.Value += s.Value
			sum.Base += s.Base
			sum.MaximumValue += s.MaximumValue
			sum.StatMayBeWrong = sum.StatMayBeWrong || s.StatMayBeWrong
			set.put(sum)
		}
	}
	if set.len() == 0 {
		return nil
	}
	return sortStats(set.list())
}
