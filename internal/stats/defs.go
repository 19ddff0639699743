package stats

import "github.com/verte-zerg/itemstats/internal/model"

// Definitions looks up manifest records. A missing record is a normal outcome:
// manifest data has gaps across content updates and the builder skips what it
// cannot resolve.
type Definitions interface {
	Stat(hash model.StatHash) (*model.StatDefinition, bool)
	StatGroup(hash uint32) (*model.StatGroupDefinition, bool)
}

// StaticDefinitions is an in-memory Definitions backed by maps.
type StaticDefinitions struct {
	Stats      map[model.StatHash]*model.StatDefinition
	StatGroups map[uint32]*model.StatGroupDefinition
}

// Stat implements Definitions.
func (d StaticDefinitions) Stat(hash model.StatHash) (*model.StatDefinition, bool) {
	def, ok := d.Stats[hash]
	return def, ok && def != nil
}

// StatGroup implements Definitions.
func (d StaticDefinitions) StatGroup(hash uint32) (*model.StatGroupDefinition, bool) {
	def, ok := d.StatGroups[hash]
	return def, ok && def != nil
}

// PlugStatActiveFunc decides whether a plug's contribution to a stat counts
// for the given item. It belongs to game-rule code outside this package.
type PlugStatActiveFunc func(item *model.Item, plugHash uint32, statHash model.StatHash, isConditionallyActive bool) bool

// AlwaysActive treats every plug stat as active.
func AlwaysActive(*model.Item, uint32, model.StatHash, bool) bool {
	return true
}

// statDisplays indexes a stat group's scaled stats by hash. Displays with an
// empty interpolation table are left out.
type statDisplays map[model.StatHash]*model.StatDisplay

func newStatDisplays(group *model.StatGroupDefinition) statDisplays {
	displays := make(statDisplays, len(group.ScaledStats))
	for i := range group.ScaledStats {
		d := &group.ScaledStats[i]
		if len(d.DisplayInterpolation) == 0 {
			continue
		}
		displays[d.StatHash] = d
	}
	return displays
}
