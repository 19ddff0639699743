package stats

import "github.com/verte-zerg/itemstats/internal/model"

// statAllowList decides which stats are displayed, and in which order.
var statAllowList = []model.StatHash{
	model.StatRoundsPerMinute,
	model.StatChargeTime,
	model.StatDrawTime,
	model.StatBlastRadius,
	model.StatVelocity,
	model.StatSwingSpeed,
	model.StatImpact,
	model.StatRange,
	model.StatGuardEfficiency,
	model.StatGuardResistance,
	model.StatAccuracy,
	model.StatStability,
	model.StatHandling,
	model.StatChargeRate,
	model.StatGuardEndurance,
	model.StatReloadSpeed,
	model.StatAimAssistance,
	model.StatZoom,
	model.StatRecoilDirection,
	model.StatMagazine,
	model.StatInventorySize,
	model.StatAmmoCapacity,
	model.StatMobility,
	model.StatResilience,
	model.StatRecovery,
	model.StatDiscipline,
	model.StatIntellect,
	model.StatStrength,
	model.StatTotal,
	model.StatCustomTotal,
}

var sortRank = func() map[model.StatHash]int {
	ranks := make(map[model.StatHash]int, len(statAllowList))
	for i, h := range statAllowList {
		ranks[h] = i
	}
	return ranks
}()

// statsMs are measured in milliseconds.
var statsMs = []model.StatHash{model.StatDrawTime, model.StatChargeTime}

// statsNoBar are shown as a plain number.
var statsNoBar = append([]model.StatHash{
	model.StatRoundsPerMinute,
	model.StatMagazine,
	model.StatInventorySize,
	model.StatRecoilDirection,
}, statsMs...)

// hiddenStatsAllowList are shown in addition to any interpolated stats.
var hiddenStatsAllowList = []model.StatHash{
	model.StatAimAssistance,
	model.StatZoom,
	model.StatRecoilDirection,
}

// SortRank returns the display position of a stat, or -1 when it is never shown.
func SortRank(hash model.StatHash) int {
	if r, ok := sortRank[hash]; ok {
		return r
	}
	return -1
}

// IsMillisecondStat reports whether the stat value is a duration in ms.
func IsMillisecondStat(hash model.StatHash) bool {
	return containsHash(statsMs, hash)
}

func containsHash(hashes []model.StatHash, hash model.StatHash) bool {
	for _, h := range hashes {
		if h == hash {
			return true
		}
	}
	return false
}
