package stats

import "github.com/verte-zerg/itemstats/internal/model"

// displayTraits are the presentation fields shared by investment and live stats.
type displayTraits struct {
	maximumValue    int
	bar             bool
	smallerIsBetter bool
}

func traitsFor(hash model.StatHash, group *model.StatGroupDefinition, display *model.StatDisplay) displayTraits {
	traits := displayTraits{
		maximumValue: group.MaximumValue,
		bar:          !containsHash(statsNoBar, hash),
	}
	if display == nil {
		return traits
	}
	first := display.DisplayInterpolation[0]
	last := display.DisplayInterpolation[len(display.DisplayInterpolation)-1]
	traits.smallerIsBetter = first.Weight > last.Weight
	traits.maximumValue = max(display.MaximumValue, first.Weight, last.Weight)
	traits.bar = !display.DisplayAsNumeric
	return traits
}

func buildStat(itemStat model.InvestmentStat, group *model.StatGroupDefinition, def *model.StatDefinition, displays statDisplays) model.DimStat {
	hash := itemStat.StatTypeHash
	display := displays[hash]
	traits := traitsFor(hash, group, display)

	value := itemStat.Value
	if display != nil {
		value = Interpolate(value, display)
	}

	return model.DimStat{
		StatHash:          hash,
		DisplayProperties: def.DisplayProperties,
		Sort:              SortRank(hash),
		InvestmentValue:   itemStat.Value,
		Value:             value,
		Base:              value,
		MaximumValue:      traits.maximumValue,
		Bar:               traits.bar,
		SmallerIsBetter:   traits.smallerIsBetter,
		// Zoom also aggregates per character, so the category check keeps it out.
		Additive: def.StatCategory == model.StatCategoryDefense &&
			def.AggregationType == model.AggregationTypeCharacter,
		IsConditionallyActive: itemStat.IsConditionallyActive,
	}
}

func shouldShowStat(itemDef *model.ItemDefinition, hash model.StatHash, displays statDisplays) bool {
	// Bows have a charge time stat that nobody asked for.
	if hash == model.StatChargeTime && itemDef.HasCategory(model.CategoryBows) {
		return false
	}

	includeHidden := !itemDef.HasCategory(model.CategorySword)

	if SortRank(hash) < 0 {
		return false
	}
	if _, ok := displays[hash]; ok {
		return true
	}
	return includeHidden && containsHash(hiddenStatsAllowList, hash)
}
