package model

import (
	"fmt"
	"strings"
)

// Stat hashes from the game manifest.
const (
	StatAccuracy        StatHash = 1591432999
	StatAimAssistance   StatHash = 1345609583
	StatAmmoCapacity    StatHash = 925767036
	StatBlastRadius     StatHash = 3614673599
	StatChargeRate      StatHash = 3022301683
	StatChargeTime      StatHash = 2961396640
	StatDrawTime        StatHash = 447667954
	StatGuardEfficiency StatHash = 2762071195
	StatGuardEndurance  StatHash = 3736848092
	StatGuardResistance StatHash = 209426660
	StatHandling        StatHash = 943549884
	StatImpact          StatHash = 4043523819
	StatInventorySize   StatHash = 1931675084
	StatMagazine        StatHash = 3871231066
	StatRange           StatHash = 1240592695
	StatRecoilDirection StatHash = 2715839340
	StatReloadSpeed     StatHash = 4188031367
	StatRoundsPerMinute StatHash = 4284893193
	StatStability       StatHash = 155624089
	StatSwingSpeed      StatHash = 2837207746
	StatVelocity        StatHash = 2523465841
	StatZoom            StatHash = 3555269338

	StatMobility   StatHash = 2996146975
	StatResilience StatHash = 392767087
	StatRecovery   StatHash = 1943323491
	StatDiscipline StatHash = 1735777505
	StatIntellect  StatHash = 144602215
	StatStrength   StatHash = 4244567218

	// Synthetic stats computed from the armor stats.
	StatTotal       StatHash = -1000
	StatCustomTotal StatHash = -1100
)

// ArmorStatCap is the highest value a single armor stat can show on a class item.
const ArmorStatCap = 42

// ArmorStats are the six character stats rolled on armor, in display order.
var ArmorStats = []StatHash{
	StatMobility,
	StatResilience,
	StatRecovery,
	StatDiscipline,
	StatIntellect,
	StatStrength,
}

var armorStatNames = map[string]StatHash{
	"mobility":   StatMobility,
	"resilience": StatResilience,
	"recovery":   StatRecovery,
	"discipline": StatDiscipline,
	"intellect":  StatIntellect,
	"strength":   StatStrength,
}

// IsArmorStat reports whether hash is one of the six armor stats.
func IsArmorStat(hash StatHash) bool {
	for _, h := range ArmorStats {
		if h == hash {
			return true
		}
	}
	return false
}

// ArmorStatByName resolves a lowercase armor stat name such as "mobility".
func ArmorStatByName(name string) (StatHash, bool) {
	h, ok := armorStatNames[strings.ToLower(strings.TrimSpace(name))]
	return h, ok
}

// Item category hashes.
const (
	CategoryBows      uint32 = 3317538576
	CategoryArmorMods uint32 = 4104513227
	// CategorySword is the legacy sword category still carried by sword definitions.
	CategorySword uint32 = 54
)

// Inventory bucket hashes.
const (
	BucketHelmet    uint32 = 3448274439
	BucketGauntlets uint32 = 3551918588
	BucketChest     uint32 = 14239492
	BucketLegs      uint32 = 20886954
	BucketClassItem uint32 = 1585787867
	BucketKinetic   uint32 = 1498876634
	BucketEnergy    uint32 = 2465295065
	BucketPower     uint32 = 953998645
)

var armorBuckets = map[uint32]ItemType{
	BucketHelmet:    ItemTypeHelmet,
	BucketGauntlets: ItemTypeGauntlets,
	BucketChest:     ItemTypeChest,
	BucketLegs:      ItemTypeLegs,
	BucketClassItem: ItemTypeClassItem,
}

var weaponBuckets = map[uint32]ItemType{
	BucketKinetic: ItemTypeKineticWeapon,
	BucketEnergy:  ItemTypeEnergyWeapon,
	BucketPower:   ItemTypePowerWeapon,
}

// BucketFor classifies a bucket hash.
func BucketFor(hash uint32) (Bucket, ItemType) {
	if t, ok := armorBuckets[hash]; ok {
		return Bucket{Hash: hash, InArmor: true}, t
	}
	if t, ok := weaponBuckets[hash]; ok {
		return Bucket{Hash: hash}, t
	}
	return Bucket{Hash: hash}, ItemTypeUnknown
}

// ItemType is the coarse item type derived from its bucket.
type ItemType string

// Item types.
const (
	ItemTypeUnknown       ItemType = ""
	ItemTypeHelmet        ItemType = "Helmet"
	ItemTypeGauntlets     ItemType = "Gauntlets"
	ItemTypeChest         ItemType = "Chest"
	ItemTypeLegs          ItemType = "Leg"
	ItemTypeClassItem     ItemType = "ClassItem"
	ItemTypeKineticWeapon ItemType = "KineticSlot"
	ItemTypeEnergyWeapon  ItemType = "Energy"
	ItemTypePowerWeapon   ItemType = "Power"
)

// Stat category and aggregation values used by the engine.
const (
	StatCategoryDefense        StatCategory    = 2
	AggregationTypeCharacter   AggregationType = 1
	AggregationTypeItemLevel   AggregationType = 2
	AggregationTypeCharAverage AggregationType = 0
)

// SocketCategoryStyle mirrors DestinySocketCategoryStyle.
type SocketCategoryStyle int

// Socket category styles.
const (
	SocketStyleUnknown     SocketCategoryStyle = 0
	SocketStyleReusable    SocketCategoryStyle = 1
	SocketStyleConsumable  SocketCategoryStyle = 2
	SocketStyleUnlockable  SocketCategoryStyle = 3
	SocketStyleIntrinsic   SocketCategoryStyle = 4
	SocketStyleEnergyMeter SocketCategoryStyle = 5
)

// DestinyClass is the character class an item is restricted to.
type DestinyClass int

// Character classes.
const (
	ClassTitan   DestinyClass = 0
	ClassHunter  DestinyClass = 1
	ClassWarlock DestinyClass = 2
	ClassUnknown DestinyClass = 3
)

var classNames = map[DestinyClass]string{
	ClassTitan:   "titan",
	ClassHunter:  "hunter",
	ClassWarlock: "warlock",
	ClassUnknown: "any",
}

func (c DestinyClass) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(c))
}

// ParseClass parses a class name such as "titan".
func ParseClass(name string) (DestinyClass, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range classNames {
		if n == name {
			return c, nil
		}
	}
	return ClassUnknown, fmt.Errorf("unknown class %q", name)
}

// Energy types.
const (
	EnergyTypeAny   = 0
	EnergyTypeArc   = 1
	EnergyTypeSolar = 2
	EnergyTypeVoid  = 3
)
