package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/verte-zerg/itemstats/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Display.BarWidth != nil || cfg.Inventory.Workers != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[display]
bar-width = 12
color = true

[custom-total]
titan = ["resilience", "Recovery", "resilience"]
warlock = ["discipline"]

[inventory]
workers = 4
profile = "/tmp/profile.json"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Display.BarWidth == nil || *cfg.Display.BarWidth != 12 {
		t.Fatalf("unexpected bar width %v", cfg.Display.BarWidth)
	}
	if cfg.Display.Color == nil || !*cfg.Display.Color {
		t.Fatalf("expected color enabled")
	}
	if cfg.Inventory.Workers == nil || *cfg.Inventory.Workers != 4 {
		t.Fatalf("unexpected workers %v", cfg.Inventory.Workers)
	}
	if cfg.Inventory.Profile == nil || *cfg.Inventory.Profile != "/tmp/profile.json" {
		t.Fatalf("unexpected profile %v", cfg.Inventory.Profile)
	}

	titan, err := cfg.CustomTotalFor(model.ClassTitan)
	if err != nil {
		t.Fatalf("CustomTotalFor failed: %v", err)
	}
	if want := []model.StatHash{model.StatResilience, model.StatRecovery}; !reflect.DeepEqual(titan, want) {
		t.Fatalf("expected %v, got %v", want, titan)
	}
	hunter, err := cfg.CustomTotalFor(model.ClassHunter)
	if err != nil || hunter != nil {
		t.Fatalf("expected no hunter selection, got %v (%v)", hunter, err)
	}
	unknown, err := cfg.CustomTotalFor(model.ClassUnknown)
	if err != nil || unknown != nil {
		t.Fatalf("expected nothing for unknown class, got %v (%v)", unknown, err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown stat":   "[custom-total]\nhunter = [\"speed\"]\n",
		"zero bar width": "[display]\nbar-width = 0\n",
		"zero workers":   "[inventory]\nworkers = 0\n",
		"bad toml":       "[display\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := LoadConfig(writeConfig(t, "[custom-total]\nhunter = [\"speed\"]\n"))
	if err == nil || !strings.Contains(err.Error(), "custom-total.hunter") {
		t.Fatalf("expected error to name the key, got %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "itemstats", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "itemstats", "manifest.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultProfilePath(); got != filepath.Join("/data", "itemstats", "profile.json") {
		t.Fatalf("unexpected profile path %q", got)
	}
}
