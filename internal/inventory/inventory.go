// Package inventory builds the stats of a whole inventory concurrently.
package inventory

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/itemstats/internal/model"
	"github.com/verte-zerg/itemstats/internal/profile"
	"github.com/verte-zerg/itemstats/internal/stats"
)

// Options configures a batch build.
type Options struct {
	// Workers limits concurrent builds. Zero means GOMAXPROCS.
	Workers int
	// CustomTotal returns the custom total selection for a class.
	CustomTotal func(model.DestinyClass) []model.StatHash
}

// Result is the outcome for one inventory entry. Stats is nil when the item
// has no stats.
type Result struct {
	Entry     profile.Entry
	Stats     []model.DimStat
	PlugStats []stats.PlugStats
}

// BuildAll builds every entry of p. Results are in entry order. The only
// error is ctx's.
func BuildAll(ctx context.Context, p *profile.Profile, b *stats.Builder, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(p.Entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, entry := range p.Entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in := stats.Input{Item: entry.Item, ItemDef: entry.Def, Live: p.Live}
			if opts.CustomTotal != nil {
				in.CustomTotal = opts.CustomTotal(entry.Item.ClassType)
			}
			results[i] = Result{Entry: entry}
			if res := b.Build(in); res != nil {
				results[i].Stats = res.Stats
				results[i].PlugStats = res.PlugStats
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summaries turns armor results into summary rows, skipping items without stats.
func Summaries(results []Result) []stats.ItemSummary {
	var out []stats.ItemSummary
	for _, r := range results {
		if !r.Entry.Item.Bucket.InArmor || r.Stats == nil {
			continue
		}
		out = append(out, stats.ItemSummary{ID: r.Entry.Item.ID, Name: r.Entry.Item.Name, Stats: r.Stats})
	}
	return out
}

// Loadout sums the additive stats of the given results, as worn together.
func Loadout(results []Result) []model.DimStat {
	sets := make([][]model.DimStat, 0, len(results))
	for _, r := range results {
		sets = append(sets, r.Stats)
	}
	return stats.SumAdditive(sets)
}
