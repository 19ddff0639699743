package stats

import (
	"sort"

	"github.com/verte-zerg/itemstats/internal/model"
)

// statSet is an insertion-ordered collection of stats keyed by hash. Each
// pipeline pass takes a set and returns a new one; sets are never shared.
type statSet struct {
	order []model.StatHash
	byKey map[model.StatHash]model.DimStat
}

func newStatSet(capacity int) statSet {
	return statSet{
		order: make([]model.StatHash, 0, capacity),
		byKey: make(map[model.StatHash]model.DimStat, capacity),
	}
}

func (s statSet) clone() statSet {
	out := newStatSet(len(s.order))
	out.order = append(out.order, s.order...)
	for k, v := range s.byKey {
		out.byKey[k] = v
	}
	return out
}

func (s statSet) get(hash model.StatHash) (model.DimStat, bool) {
	stat, ok := s.byKey[hash]
	return stat, ok
}

// put inserts or replaces a stat, keeping the original position on replace.
func (s *statSet) put(stat model.DimStat) {
	if _, ok := s.byKey[stat.StatHash]; !ok {
		s.order = append(s.order, stat.StatHash)
	}
	s.byKey[stat.StatHash] = stat
}

func (s statSet) len() int {
	return len(s.order)
}

// list returns the stats in insertion order.
func (s statSet) list() []model.DimStat {
	out := make([]model.DimStat, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.byKey[h])
	}
	return out
}

func sortStats(stats []model.DimStat) []model.DimStat {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Sort < stats[j].Sort
	})
	return stats
}
