package stats

import "github.com/verte-zerg/itemstats/internal/model"

const (
	weaponGroupHash uint32 = 100
	armorGroupHash  uint32 = 200
)

func linearDisplay(hash model.StatHash, maximum int) model.StatDisplay {
	return model.StatDisplay{
		StatHash:     hash,
		MaximumValue: maximum,
		DisplayInterpolation: []model.InterpolationPoint{
			{Value: 0, Weight: 0},
			{Value: maximum, Weight: maximum},
		},
	}
}

func testDefinitions() StaticDefinitions {
	statDefs := map[model.StatHash]*model.StatDefinition{
		model.StatRange:         {Hash: model.StatRange, DisplayProperties: model.DisplayProperties{Name: "Range"}, StatCategory: 1, AggregationType: model.AggregationTypeItemLevel},
		model.StatStability:     {Hash: model.StatStability, DisplayProperties: model.DisplayProperties{Name: "Stability"}, StatCategory: 1, AggregationType: model.AggregationTypeItemLevel},
		model.StatAimAssistance: {Hash: model.StatAimAssistance, DisplayProperties: model.DisplayProperties{Name: "Aim Assistance"}, StatCategory: 1, AggregationType: model.AggregationTypeItemLevel},
		model.StatZoom:          {Hash: model.StatZoom, DisplayProperties: model.DisplayProperties{Name: "Zoom"}, StatCategory: 1, AggregationType: model.AggregationTypeCharacter},
		model.StatChargeTime:    {Hash: model.StatChargeTime, DisplayProperties: model.DisplayProperties{Name: "Charge Time"}, StatCategory: 1},
		model.StatMagazine:      {Hash: model.StatMagazine, DisplayProperties: model.DisplayProperties{Name: "Magazine"}, StatCategory: 1},
	}
	armorNames := []string{"Mobility", "Resilience", "Recovery", "Discipline", "Intellect", "Strength"}
	for i, h := range model.ArmorStats {
		statDefs[h] = &model.StatDefinition{
			Hash:              h,
			DisplayProperties: model.DisplayProperties{Name: armorNames[i]},
			StatCategory:      model.StatCategoryDefense,
			AggregationType:   model.AggregationTypeCharacter,
		}
	}

	weaponGroup := &model.StatGroupDefinition{
		Hash:         weaponGroupHash,
		MaximumValue: 100,
		ScaledStats: []model.StatDisplay{
			{
				StatHash:     model.StatRange,
				MaximumValue: 100,
				DisplayInterpolation: []model.InterpolationPoint{
					{Value: 0, Weight: 0},
					{Value: 50, Weight: 62},
					{Value: 100, Weight: 100},
				},
			},
			linearDisplay(model.StatStability, 100),
			{
				StatHash:     model.StatChargeTime,
				MaximumValue: 1000,
				DisplayInterpolation: []model.InterpolationPoint{
					{Value: 0, Weight: 1000},
					{Value: 100, Weight: 500},
				},
			},
		},
	}

	armorGroup := &model.StatGroupDefinition{Hash: armorGroupHash, MaximumValue: 42}
	for _, h := range model.ArmorStats {
		armorGroup.ScaledStats = append(armorGroup.ScaledStats, linearDisplay(h, 42))
	}

	return StaticDefinitions{
		Stats: statDefs,
		StatGroups: map[uint32]*model.StatGroupDefinition{
			weaponGroupHash: weaponGroup,
			armorGroupHash:  armorGroup,
		},
	}
}

func plugDef(hash uint32, stats ...model.InvestmentStat) *model.ItemDefinition {
	return &model.ItemDefinition{Hash: hash, InvestmentStats: stats}
}

func modDef(hash uint32, stats ...model.InvestmentStat) *model.ItemDefinition {
	def := plugDef(hash, stats...)
	def.ItemCategoryHashes = []uint32{model.CategoryArmorMods}
	return def
}

func socket(index int, plugged *model.ItemDefinition, options ...*model.ItemDefinition) *model.Socket {
	s := &model.Socket{Index: index}
	if plugged != nil {
		s.Plugged = &model.Plug{Def: plugged}
	}
	for _, o := range options {
		s.PlugOptions = append(s.PlugOptions, &model.Plug{Def: o})
	}
	return s
}

func weaponItem(sockets ...*model.Socket) *model.Item {
	bucket, itemType := model.BucketFor(model.BucketKinetic)
	item := &model.Item{ID: "w1", Hash: 1, Type: itemType, Bucket: bucket}
	if len(sockets) > 0 {
		item.Sockets = &model.Sockets{AllSockets: sockets}
	}
	return item
}

func weaponDef(categories []uint32, stats ...model.InvestmentStat) *model.ItemDefinition {
	return &model.ItemDefinition{
		Hash:               1,
		ItemCategoryHashes: categories,
		InvestmentStats:    stats,
		Stats:              &model.ItemStatsBlock{StatGroupHash: weaponGroupHash},
	}
}

func armorItem(id string, bucketHash uint32, sockets ...*model.Socket) *model.Item {
	bucket, itemType := model.BucketFor(bucketHash)
	item := &model.Item{ID: id, Hash: 2, Type: itemType, Bucket: bucket, ClassType: model.ClassTitan}
	if len(sockets) > 0 {
		item.Sockets = &model.Sockets{AllSockets: sockets}
	}
	return item
}

func armorDef() *model.ItemDefinition {
	return &model.ItemDefinition{
		Hash:  2,
		Stats: &model.ItemStatsBlock{StatGroupHash: armorGroupHash},
	}
}

func stat(hash model.StatHash, value int) model.InvestmentStat {
	return model.InvestmentStat{StatTypeHash: hash, Value: value}
}

func findStat(stats []model.DimStat, hash model.StatHash) (model.DimStat, bool) {
	for _, s := range stats {
		if s.StatHash == hash {
			return s, true
		}
	}
	return model.DimStat{}, false
}
