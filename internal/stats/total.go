package stats

import "github.com/verte-zerg/itemstats/internal/model"

const aggregateMaximumValue = 100

func totalStat(stats []model.DimStat) model.DimStat {
	total, baseTotal := 0, 0
	mayBeWrong := false
	for _, s := range stats {
		total += s.Value
		baseTotal += s.Base
		mayBeWrong = mayBeWrong || s.StatMayBeWrong
	}
	return model.DimStat{
		StatHash:          model.StatTotal,
		DisplayProperties: model.DisplayProperties{Name: "Total"},
		Sort:              SortRank(model.StatTotal),
		InvestmentValue:   total,
		Value:             total,
		Base:              baseTotal,
		StatMayBeWrong:    mayBeWrong,
		MaximumValue:      aggregateMaximumValue,
	}
}

// customStat sums the base values of a chosen subset of armor stats. It
// returns false when the subset is empty or covers every armor stat, since
// that is no different from Total.
func customStat(stats []model.DimStat, custom []model.StatHash) (model.DimStat, bool) {
	chosen := uniqueHashes(custom)
	if len(chosen) == 0 || len(chosen) == len(model.ArmorStats) {
		return model.DimStat{}, false
	}

	total := 0
	mayBeWrong := false
	for _, s := range stats {
		if _, ok := chosen[s.StatHash]; !ok {
			continue
		}
		total += s.Base
		mayBeWrong = mayBeWrong || s.StatMayBeWrong
	}
	return model.DimStat{
		StatHash: model.StatCustomTotal,
		DisplayProperties: model.DisplayProperties{
			Name:        "Custom Total",
			Description: "Sum of the base values of the stats chosen for this class.",
		},
		Sort:            SortRank(model.StatCustomTotal),
		InvestmentValue: total,
		Value:           total,
		Base:            total,
		StatMayBeWrong:  mayBeWrong,
		MaximumValue:    aggregateMaximumValue,
	}, true
}

func uniqueHashes(hashes []model.StatHash) map[model.StatHash]struct{} {
	out := make(map[model.StatHash]struct{}, len(hashes))
	for _, h := range hashes {
		out[h] = struct{}{}
	}
	return out
}
