package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/itemstats/internal/model"
)

const (
	testStats = `{
		"1240592695": {"hash": 1240592695, "displayProperties": {"name": "Range"}, "statCategory": 1, "aggregationType": 2},
		"2996146975": {"hash": 2996146975, "displayProperties": {"name": "Mobility"}, "statCategory": 2, "aggregationType": 1}
	}`
	testStatGroups = `{
		"100": {"hash": 100, "maximumValue": 100, "scaledStats": [
			{"statHash": 1240592695, "maximumValue": 100, "displayAsNumeric": false,
			 "displayInterpolation": [{"value": 0, "weight": 0}, {"value": 50, "weight": 62}, {"value": 100, "weight": 100}]}
		]}
	}`
	testItems = `{
		"3001": {"hash": 3001, "displayProperties": {"name": "Fatebringer"}, "itemCategoryHashes": [1],
		         "investmentStats": [{"statTypeHash": 1240592695, "value": 50, "isConditionallyActive": false}],
		         "stats": {"statGroupHash": 100}, "inventory": {"bucketTypeHash": 1498876634}, "classType": 3},
		"3002": {"hash": 3002, "displayProperties": {"name": "Fate Cries Foul"}, "inventory": {"bucketTypeHash": 1498876634}, "classType": 3},
		"3003": {"hash": 3003, "displayProperties": {"name": "Smallbore"}, "investmentStats": [{"statTypeHash": 1240592695, "value": 7}],
		         "plug": {"plugCategoryHash": 1, "plugCategoryIdentifier": "barrels"}, "classType": 3}
	}`
)

func writeManifest(t *testing.T, items string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		StatDefinitionFile:      testStats,
		StatGroupDefinitionFile: testStatGroups,
		ItemDefinitionFile:      items,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "manifest.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func TestImportAndLookup(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	counts, err := s.ImportDir(ctx, writeManifest(t, testItems))
	if err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if counts != (Counts{Stats: 2, StatGroups: 1, Items: 3}) {
		t.Fatalf("unexpected counts %+v", counts)
	}

	stat, err := s.StatDefinition(ctx, model.StatMobility)
	if err != nil {
		t.Fatalf("StatDefinition failed: %v", err)
	}
	if stat.DisplayProperties.Name != "Mobility" || stat.StatCategory != model.StatCategoryDefense {
		t.Fatalf("unexpected stat definition %+v", stat)
	}

	group, err := s.StatGroupDefinition(ctx, 100)
	if err != nil {
		t.Fatalf("StatGroupDefinition failed: %v", err)
	}
	if len(group.ScaledStats) != 1 || len(group.ScaledStats[0].DisplayInterpolation) != 3 {
		t.Fatalf("unexpected stat group %+v", group)
	}

	item, err := s.ItemDefinition(ctx, 3001)
	if err != nil {
		t.Fatalf("ItemDefinition failed: %v", err)
	}
	if item.Stats == nil || item.Stats.StatGroupHash != 100 || item.Inventory.BucketTypeHash != model.BucketKinetic {
		t.Fatalf("unexpected item definition %+v", item)
	}
	if inv, ok := item.InvestmentStat(model.StatRange); !ok || inv.Value != 50 {
		t.Fatalf("expected range investment stat, got %+v", item.InvestmentStats)
	}

	info, err := s.Info(ctx)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Counts != counts || info.ImportedAt.IsZero() {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestLookupNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.Info(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before import, got %v", err)
	}
	if _, err := s.ItemDefinition(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	defs := s.Definitions(ctx, nil)
	if _, ok := defs.Stat(model.StatRange); ok {
		t.Fatalf("expected missing stat")
	}
	if _, ok := defs.StatGroup(100); ok {
		t.Fatalf("expected missing stat group")
	}
}

func TestReimportReplacesAndPurgesCache(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.ImportDir(ctx, writeManifest(t, testItems)); err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if _, err := s.ItemDefinition(ctx, 3002); err != nil {
		t.Fatalf("ItemDefinition failed: %v", err)
	}

	updated := `{"3001": {"hash": 3001, "displayProperties": {"name": "Fatebringer (Adept)"}, "classType": 3}}`
	counts, err := s.ImportDir(ctx, writeManifest(t, updated))
	if err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if counts.Items != 1 {
		t.Fatalf("expected 1 item, got %d", counts.Items)
	}
	if _, err := s.ItemDefinition(ctx, 3002); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected cached item to be gone after reimport, got %v", err)
	}
	item, err := s.ItemDefinition(ctx, 3001)
	if err != nil {
		t.Fatalf("ItemDefinition failed: %v", err)
	}
	if item.DisplayProperties.Name != "Fatebringer (Adept)" {
		t.Fatalf("expected updated name, got %q", item.DisplayProperties.Name)
	}
}

func TestImportFailureKeepsPreviousData(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.ImportDir(ctx, writeManifest(t, testItems)); err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if _, err := s.ImportDir(ctx, writeManifest(t, `{"not-a-hash": {}}`)); err == nil {
		t.Fatalf("expected error for invalid hash key")
	}
	if _, err := s.ImportDir(ctx, t.TempDir()); err == nil {
		t.Fatalf("expected error for missing files")
	}
	if _, err := s.ItemDefinition(ctx, 3002); err != nil {
		t.Fatalf("expected previous data to survive, got %v", err)
	}
}

func TestFindItems(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.ImportDir(ctx, writeManifest(t, testItems)); err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}

	refs, err := s.FindItems(ctx, "FATE", 0)
	if err != nil {
		t.Fatalf("FindItems failed: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 matches, got %+v", refs)
	}
	if refs[0].Name != "Fate Cries Foul" || refs[1].Hash != 3001 {
		t.Fatalf("unexpected order %+v", refs)
	}

	refs, err = s.FindItems(ctx, "fate", 1)
	if err != nil {
		t.Fatalf("FindItems failed: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(refs))
	}
}

func TestDefinitionsView(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.ImportDir(ctx, writeManifest(t, testItems)); err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}

	defs := s.Definitions(ctx, nil)
	if def, ok := defs.Stat(model.StatRange); !ok || def.DisplayProperties.Name != "Range" {
		t.Fatalf("expected range definition, got %+v", def)
	}
	if group, ok := defs.StatGroup(100); !ok || group.MaximumValue != 100 {
		t.Fatalf("expected stat group, got %+v", group)
	}
	if plug, ok := defs.Item(3003); !ok || plug.Plug == nil || plug.Plug.PlugCategoryIdentifier != "barrels" {
		t.Fatalf("expected plug definition, got %+v", plug)
	}
}
