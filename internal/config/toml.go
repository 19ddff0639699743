// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/itemstats/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Display     DisplayConfig     `toml:"display"`
	CustomTotal CustomTotalConfig `toml:"custom-total"`
	Inventory   InventoryConfig   `toml:"inventory"`
}

// DisplayConfig maps output settings.
type DisplayConfig struct {
	BarWidth *int  `toml:"bar-width"`
	Color    *bool `toml:"color"`
}

// CustomTotalConfig lists, per class, the armor stats summed into Custom Total.
type CustomTotalConfig struct {
	Titan   []string `toml:"titan"`
	Hunter  []string `toml:"hunter"`
	Warlock []string `toml:"warlock"`
}

// InventoryConfig maps batch build settings.
type InventoryConfig struct {
	Profile *string `toml:"profile"`
	Workers *int    `toml:"workers"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later, far from the file.
func (c FileConfig) Validate() error {
	if c.Display.BarWidth != nil && *c.Display.BarWidth <= 0 {
		return fmt.Errorf("display.bar-width must be positive")
	}
	if c.Inventory.Workers != nil && *c.Inventory.Workers <= 0 {
		return fmt.Errorf("inventory.workers must be positive")
	}
	for _, class := range []model.DestinyClass{model.ClassTitan, model.ClassHunter, model.ClassWarlock} {
		if _, err := c.CustomTotalFor(class); err != nil {
			return err
		}
	}
	return nil
}

// CustomTotalFor resolves the custom total stat names configured for a class.
// Duplicates are dropped. Classes without a selection return nil.
func (c FileConfig) CustomTotalFor(class model.DestinyClass) ([]model.StatHash, error) {
	var names []string
	switch class {
	case model.ClassTitan:
		names = c.CustomTotal.Titan
	case model.ClassHunter:
		names = c.CustomTotal.Hunter
	case model.ClassWarlock:
		names = c.CustomTotal.Warlock
	default:
		return nil, nil
	}

	var hashes []model.StatHash
	seen := map[model.StatHash]bool{}
	for _, name := range names {
		hash, ok := model.ArmorStatByName(name)
		if !ok {
			return nil, fmt.Errorf("custom-total.%s: unknown armor stat %q", class, name)
		}
		if seen[hash] {
			continue
		}
		seen[hash] = true
		hashes = append(hashes, hash)
	}
	return hashes, nil
}
