// Package model defines shared data structures.
package model

// StatHash identifies a stat. Manifest stats use their unsigned 32-bit hash;
// synthetic stats such as Total use negative values.
type StatHash int64

// DisplayProperties holds the localized name and description of a definition.
type DisplayProperties struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// StatCategory mirrors DestinyStatCategory.
type StatCategory int

// AggregationType mirrors DestinyStatAggregationType.
type AggregationType int

// StatDefinition is the static metadata for one stat.
type StatDefinition struct {
	Hash              StatHash          `json:"hash"`
	DisplayProperties DisplayProperties `json:"displayProperties"`
	StatCategory      StatCategory      `json:"statCategory"`
	AggregationType   AggregationType   `json:"aggregationType"`
}

// InterpolationPoint is one breakpoint of a display curve.
type InterpolationPoint struct {
	Value  int `json:"value"`
	Weight int `json:"weight"`
}

// StatDisplay describes how a raw investment value is shown for one stat.
type StatDisplay struct {
	StatHash             StatHash             `json:"statHash"`
	MaximumValue         int                  `json:"maximumValue"`
	DisplayAsNumeric     bool                 `json:"displayAsNumeric"`
	DisplayInterpolation []InterpolationPoint `json:"displayInterpolation"`
}

// StatGroupDefinition groups the scaled stats shared by an item type.
type StatGroupDefinition struct {
	Hash         uint32        `json:"hash"`
	MaximumValue int           `json:"maximumValue"`
	ScaledStats  []StatDisplay `json:"scaledStats"`
}

// InvestmentStat is a raw stat contribution defined on an item or plug.
type InvestmentStat struct {
	StatTypeHash          StatHash `json:"statTypeHash"`
	Value                 int      `json:"value"`
	IsConditionallyActive bool     `json:"isConditionallyActive"`
}

// ItemStatsBlock references the stat group of an item definition.
type ItemStatsBlock struct {
	StatGroupHash uint32 `json:"statGroupHash"`
}

// ItemInventoryBlock holds the inventory bucket of an item definition.
type ItemInventoryBlock struct {
	BucketTypeHash uint32 `json:"bucketTypeHash"`
}

// ItemPlugBlock is present on definitions that can be socketed.
type ItemPlugBlock struct {
	PlugCategoryHash       uint32 `json:"plugCategoryHash"`
	PlugCategoryIdentifier string `json:"plugCategoryIdentifier,omitempty"`
	EnergyType             int    `json:"energyType,omitempty"`
}

// ItemDefinition is the static definition of an item or plug.
type ItemDefinition struct {
	Hash               uint32             `json:"hash"`
	DisplayProperties  DisplayProperties  `json:"displayProperties"`
	ItemCategoryHashes []uint32           `json:"itemCategoryHashes"`
	InvestmentStats    []InvestmentStat   `json:"investmentStats"`
	Stats              *ItemStatsBlock    `json:"stats,omitempty"`
	Inventory          ItemInventoryBlock `json:"inventory"`
	Plug               *ItemPlugBlock     `json:"plug,omitempty"`
	ClassType          DestinyClass       `json:"classType"`
}

// HasCategory reports whether the definition is tagged with the item category.
func (d *ItemDefinition) HasCategory(category uint32) bool {
	if d == nil {
		return false
	}
	for _, c := range d.ItemCategoryHashes {
		if c == category {
			return true
		}
	}
	return false
}

// InvestmentStat returns the definition's contribution to a stat, if any.
func (d *ItemDefinition) InvestmentStat(hash StatHash) (InvestmentStat, bool) {
	if d == nil {
		return InvestmentStat{}, false
	}
	for _, s := range d.InvestmentStats {
		if s.StatTypeHash == hash {
			return s, true
		}
	}
	return InvestmentStat{}, false
}

// Bucket is the inventory slot an item lives in.
type Bucket struct {
	Hash    uint32
	InArmor bool
}

// Energy is the armor energy capacity of an instance.
type Energy struct {
	Type     int `json:"type"`
	Capacity int `json:"capacity"`
}

// Plug is a socketable item.
type Plug struct {
	Def *ItemDefinition
}

// Hash returns the plug definition hash.
func (p *Plug) Hash() uint32 {
	if p == nil || p.Def == nil {
		return 0
	}
	return p.Def.Hash
}

// Socket is one socket of an item instance.
type Socket struct {
	Index         int
	CategoryStyle SocketCategoryStyle
	Plugged       *Plug
	PlugOptions   []*Plug
}

// Sockets holds the sockets of an instance in socket index order.
type Sockets struct {
	AllSockets []*Socket
}

// Item is a resolved item instance (or a definition preview with no instance).
type Item struct {
	ID        string
	Hash      uint32
	Name      string
	Type      ItemType
	Bucket    Bucket
	ClassType DestinyClass
	Energy    *Energy
	Sockets   *Sockets
}

// LiveStats holds the precomputed stat values the data source reports for an instance.
type LiveStats map[StatHash]int

// DimStat is a displayable stat value of an item.
type DimStat struct {
	StatHash          StatHash
	DisplayProperties DisplayProperties
	// Sort is the stat's position in the display allow-list.
	Sort int
	// InvestmentValue is the raw, unscaled value. It may be negative.
	InvestmentValue int
	Value           int
	// Base is the value without mods, the item's own roll.
	Base                  int
	MaximumValue          int
	Bar                   bool
	SmallerIsBetter       bool
	Additive              bool
	IsConditionallyActive bool
	StatMayBeWrong        bool
}
