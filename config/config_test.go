package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.System.Language != LanguageEnglish {
		t.Errorf("default language: got %d, want %d", cfg.System.Language, LanguageEnglish)
	}
	if cfg.System.AVPack != 6 {
		t.Errorf("default AV pack: got %d, want 6", cfg.System.AVPack)
	}
	if cfg.System.GameRegion != 0xFFFF {
		t.Errorf("default game region: got %#x, want 0xFFFF", cfg.System.GameRegion)
	}
	if !cfg.Compat.LogBrokenEnumerate {
		t.Error("default log_broken_enumerate: got false, want true")
	}
	if cfg.Content.CatalogDSN != ":memory:" {
		t.Errorf("default catalog DSN: got %q, want \":memory:\"", cfg.Content.CatalogDSN)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "xenon.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.System.Language != LanguageEnglish {
		t.Errorf("language: got %d, want default", cfg.System.Language)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xenon.toml")
	content := `
[system]
language = 2
av_pack = 8

[compat]
log_broken_enumerate = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.System.Language != LanguageJapanese {
		t.Errorf("language: got %d, want 2", cfg.System.Language)
	}
	if cfg.System.AVPack != 8 {
		t.Errorf("AV pack: got %d, want 8", cfg.System.AVPack)
	}
	if cfg.Compat.LogBrokenEnumerate {
		t.Error("log_broken_enumerate: got true, want false")
	}
	// Untouched keys keep their defaults.
	if cfg.System.GameRegion != 0xFFFF {
		t.Errorf("game region: got %#x, want default 0xFFFF", cfg.System.GameRegion)
	}
	if cfg.Content.CatalogDSN != ":memory:" {
		t.Errorf("catalog DSN: got %q, want default", cfg.Content.CatalogDSN)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xenon.toml")
	if err := os.WriteFile(path, []byte("[system\nlanguage="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load of malformed file: got nil error")
	}
}
