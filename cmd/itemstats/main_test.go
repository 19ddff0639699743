package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/itemstats/internal/config"
	"github.com/verte-zerg/itemstats/internal/model"
	"github.com/verte-zerg/itemstats/internal/profile"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	tmpl := defaultConfigTemplate()
	var cfg config.FileConfig
	if _, err := toml.Decode(tmpl, &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.Display.BarWidth != nil || cfg.Inventory.Workers != nil {
		t.Fatalf("expected every value commented out, got %+v", cfg)
	}

	// Uncommenting the examples must give a valid config.
	var uncommented []string
	for _, line := range strings.Split(tmpl, "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		uncommented = append(uncommented, line)
	}
	cfg = config.FileConfig{}
	if _, err := toml.Decode(strings.Join(uncommented, "\n"), &cfg); err != nil {
		t.Fatalf("uncommented template does not decode: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("uncommented template is invalid: %v", err)
	}
	if cfg.Display.BarWidth == nil || *cfg.Display.BarWidth != defaultBarWidth {
		t.Fatalf("expected bar-width %d, got %v", defaultBarWidth, cfg.Display.BarWidth)
	}
	if len(cfg.CustomTotal.Titan) != 2 {
		t.Fatalf("expected titan custom total example, got %v", cfg.CustomTotal.Titan)
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var width, count int
	cmd.Flags().IntVar(&width, "bar-width", 20, "")
	cmd.Flags().IntVar(&count, "workers", 4, "")
	if err := cmd.Flags().Parse([]string{"--bar-width=30"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	fromFile := 50
	applyIntConfig(cmd, "bar-width", &width, &fromFile)
	applyIntConfig(cmd, "workers", &count, &fromFile)
	if width != 30 {
		t.Fatalf("expected flag to win, got %d", width)
	}
	if count != 50 {
		t.Fatalf("expected config value, got %d", count)
	}

	applyIntConfig(cmd, "workers", &count, nil)
	if count != 50 {
		t.Fatalf("nil config value must not change target, got %d", count)
	}
}

func TestApplyStringAndBoolConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var path string
	var color bool
	cmd.Flags().StringVar(&path, "profile", "default.json", "")
	cmd.Flags().BoolVar(&color, "color", false, "")

	p := "other.json"
	c := true
	applyStringConfig(cmd, "profile", &path, &p)
	applyBoolConfig(cmd, "color", &color, &c)
	if path != "other.json" || !color {
		t.Fatalf("expected config values, got %q %v", path, color)
	}
}

func TestFindDisplay(t *testing.T) {
	group := &model.StatGroupDefinition{
		ScaledStats: []model.StatDisplay{
			{StatHash: model.StatImpact, MaximumValue: 100},
			{StatHash: model.StatRange, MaximumValue: 100},
		},
	}
	names := map[model.StatHash]string{model.StatImpact: "Impact", model.StatRange: "Range"}
	statName := func(h model.StatHash) string { return names[h] }

	d, err := findDisplay(group, "range", statName)
	if err != nil || d.StatHash != model.StatRange {
		t.Fatalf("expected Range by name, got %+v %v", d, err)
	}
	d, err = findDisplay(group, fmt.Sprint(int64(model.StatImpact)), statName)
	if err != nil || d.StatHash != model.StatImpact {
		t.Fatalf("expected Impact by hash, got %+v %v", d, err)
	}
	_, err = findDisplay(group, "Stability", statName)
	if err == nil || !strings.Contains(err.Error(), "Impact, Range") {
		t.Fatalf("expected error listing available stats, got %v", err)
	}
}

func TestPreviewItem(t *testing.T) {
	def := &model.ItemDefinition{
		Hash:              7,
		DisplayProperties: model.DisplayProperties{Name: "Bond"},
		Inventory:         model.ItemInventoryBlock{BucketTypeHash: model.BucketClassItem},
		ClassType:         model.ClassWarlock,
	}
	item := previewItem(def)
	if item.ID != "" || item.Name != "Bond" || item.Type != model.ItemTypeClassItem || !item.Bucket.InArmor {
		t.Fatalf("unexpected preview %+v", item)
	}
	if item.ClassType != model.ClassWarlock {
		t.Fatalf("expected warlock, got %v", item.ClassType)
	}
}

func TestFilterClass(t *testing.T) {
	entry := func(class model.DestinyClass) profile.Entry {
		return profile.Entry{Item: &model.Item{ClassType: class}}
	}
	entries := []profile.Entry{
		entry(model.ClassTitan),
		entry(model.ClassHunter),
		entry(model.ClassUnknown),
		entry(model.ClassTitan),
	}
	got := filterClass(entries, model.ClassTitan)
	if len(got) != 3 {
		t.Fatalf("expected titan and classless items, got %d", len(got))
	}
	if len(entries) != 4 || entries[1].Item.ClassType != model.ClassHunter {
		t.Fatalf("filter must not modify its input")
	}
}
