// Package rules decides when a conditionally active plug stat applies.
package rules

import "github.com/verte-zerg/itemstats/internal/model"

// Plugs with conditional stat bonuses.
const (
	PowerfulFriends            uint32 = 1484685887
	RadiantLight               uint32 = 2979161761
	ChargeHarvester            uint32 = 2263321587
	ElementalCapacitor         uint32 = 3511092054
	EnhancedElementalCapacitor uint32 = 711234314
)

// classStat is the stat Charge Harvester raises for each class.
var classStat = map[model.DestinyClass]model.StatHash{
	model.ClassHunter:  model.StatMobility,
	model.ClassTitan:   model.StatResilience,
	model.ClassWarlock: model.StatRecovery,
}

// PlugStatActive reports whether a plug's contribution to a stat counts on
// item. Unconditional stats always count; unknown conditional ones too.
func PlugStatActive(item *model.Item, plugHash uint32, statHash model.StatHash, isConditionallyActive bool) bool {
	if !isConditionallyActive {
		return true
	}
	switch plugHash {
	case PowerfulFriends, RadiantLight:
		// Active while another Arc mod is socketed on the same item.
		return hasOtherArcMod(item, plugHash)
	case ChargeHarvester:
		want, ok := classStat[item.ClassType]
		return ok && want == statHash
	case ElementalCapacitor, EnhancedElementalCapacitor:
		// Depends on the equipped subclass, which an item does not know.
		return false
	}
	return true
}

func hasOtherArcMod(item *model.Item, plugHash uint32) bool {
	if item.Sockets == nil {
		return false
	}
	for _, s := range item.Sockets.AllSockets {
		if s.Plugged == nil || s.Plugged.Def == nil {
			continue
		}
		def := s.Plugged.Def
		if def.Hash == plugHash || def.Plug == nil {
			continue
		}
		if def.Plug.EnergyType == model.EnergyTypeArc {
			return true
		}
	}
	return false
}
