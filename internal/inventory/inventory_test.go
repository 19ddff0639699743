package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/itemstats/internal/model"
	"github.com/verte-zerg/itemstats/internal/profile"
	"github.com/verte-zerg/itemstats/internal/stats"
)

const armorGroup uint32 = 7

func testBuilder() *stats.Builder {
	group := &model.StatGroupDefinition{Hash: armorGroup, MaximumValue: 42}
	statDefs := map[model.StatHash]*model.StatDefinition{}
	for _, h := range model.ArmorStats {
		group.ScaledStats = append(group.ScaledStats, model.StatDisplay{
			StatHash:     h,
			MaximumValue: 42,
			DisplayInterpolation: []model.InterpolationPoint{
				{Value: 0, Weight: 0},
				{Value: 42, Weight: 42},
			},
		})
		statDefs[h] = &model.StatDefinition{
			Hash:            h,
			StatCategory:    model.StatCategoryDefense,
			AggregationType: model.AggregationTypeCharacter,
		}
	}
	return stats.NewBuilder(stats.StaticDefinitions{
		Stats:      statDefs,
		StatGroups: map[uint32]*model.StatGroupDefinition{armorGroup: group},
	}, nil)
}

func testProfile(n int) *profile.Profile {
	p := &profile.Profile{Live: map[string]model.LiveStats{}}
	armorDef := &model.ItemDefinition{Hash: 1, Stats: &model.ItemStatsBlock{StatGroupHash: armorGroup}}
	for i := 0; i < n; i++ {
		bucket, itemType := model.BucketFor(model.BucketHelmet)
		id := fmt.Sprintf("a%d", i)
		p.Entries = append(p.Entries, profile.Entry{
			Item: &model.Item{ID: id, Hash: 1, Name: id, Type: itemType, Bucket: bucket, ClassType: model.ClassHunter},
			Def:  armorDef,
		})
		p.Live[id] = model.LiveStats{model.StatMobility: i, model.StatRecovery: 10}
	}
	// A weapon-like item with no stat group.
	p.Entries = append(p.Entries, profile.Entry{
		Item: &model.Item{ID: "w", Hash: 2, Name: "w"},
		Def:  &model.ItemDefinition{Hash: 2},
	})
	return p
}

func TestBuildAllKeepsOrder(t *testing.T) {
	p := testProfile(25)
	results, err := BuildAll(context.Background(), p, testBuilder(), Options{
		Workers: 3,
		CustomTotal: func(class model.DestinyClass) []model.StatHash {
			if class == model.ClassHunter {
				return []model.StatHash{model.StatMobility}
			}
			return nil
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 26)

	for i := 0; i < 25; i++ {
		r := results[i]
		assert.Equal(t, fmt.Sprintf("a%d", i), r.Entry.Item.ID)
		require.Len(t, r.Stats, 4, "mobility, recovery, total, custom total")
		assert.Equal(t, i, r.Stats[0].Value)
		assert.Equal(t, model.StatCustomTotal, r.Stats[3].StatHash)
		assert.Equal(t, i, r.Stats[3].Value)
	}
	assert.Nil(t, results[25].Stats)

	summaries := Summaries(results)
	assert.Len(t, summaries, 25)
}

func TestBuildAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildAll(ctx, testProfile(5), testBuilder(), Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadout(t *testing.T) {
	results, err := BuildAll(context.Background(), testProfile(3), testBuilder(), Options{})
	require.NoError(t, err)

	got := Loadout(results)
	require.Len(t, got, 2)
	assert.Equal(t, model.StatMobility, got[0].StatHash)
	assert.Equal(t, 0+1+2, got[0].Value)
	assert.Equal(t, model.StatRecovery, got[1].StatHash)
	assert.Equal(t, 30, got[1].Value)
}
