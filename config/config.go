// Package config handles xenon.toml emulator configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Guest language identifiers reported by XGetLanguage.
const (
	LanguageEnglish  uint32 = 1
	LanguageJapanese uint32 = 2
)

// Config represents a xenon.toml configuration file.
type Config struct {
	System  System  `toml:"system"`
	Compat  Compat  `toml:"compat"`
	Content Content `toml:"content"`
}

// System holds the identity values the console reported to titles.
type System struct {
	// Language is the dashboard language (1 = English, 2 = Japanese).
	Language uint32 `toml:"language"`
	// AVPack is the attached A/V pack identifier; 6 (VGA) passes the
	// PAL checks titles run at boot.
	AVPack uint32 `toml:"av_pack"`
	// GameRegion as reported by XGetGameRegion. 0xFFFF is region-free.
	GameRegion uint32 `toml:"game_region"`
	// SystemVersion as reported by XamGetSystemVersion. Zero pretends
	// to be an old dashboard so titles load fewer symbols.
	SystemVersion uint32 `toml:"system_version"`
}

// Compat toggles compatibility-quirk diagnostics.
type Compat struct {
	// LogBrokenEnumerate logs a warning each time the enumerate shim
	// applies the buffer-length compatibility rule.
	LogBrokenEnumerate bool `toml:"log_broken_enumerate"`
}

// Content configures the content catalog.
type Content struct {
	// CatalogDSN is the sqlite DSN for the content catalog. The default
	// in-memory catalog is rebuilt per process.
	CatalogDSN string `toml:"catalog_dsn"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		System: System{
			Language:   LanguageEnglish,
			AVPack:     6,
			GameRegion: 0xFFFF,
		},
		Compat: Compat{
			LogBrokenEnumerate: true,
		},
		Content: Content{
			CatalogDSN: ":memory:",
		},
	}
}

// Load parses a xenon.toml file. A missing file yields the defaults;
// present keys override defaults field by field.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return cfg, nil
}
