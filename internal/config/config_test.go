package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/tilepat/internal/source"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Source.Kind != source.KindEmbed {
		t.Errorf("expected default source %q, got %q", source.KindEmbed, cfg.Source.Kind)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Render.Scale != 1 || cfg.Render.Join != 1 {
		t.Errorf("unexpected default render options %+v", cfg.Render)
	}
	if cfg.Source.FetchTimeout() != 10*time.Second {
		t.Errorf("expected 10s fetch timeout, got %v", cfg.Source.FetchTimeout())
	}

	// Mutating one config must not leak into the package default.
	cfg.Palette[0] = "#000000"
	if DefaultPalette[0] == "#000000" {
		t.Error("DefaultConfig shares the DefaultPalette slice")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.tilepat.yml")

	original := DefaultConfig()
	original.Source.Kind = source.KindHTTP
	original.Source.BaseURL = "https://cdn.example.com/assets"
	original.Palette = []string{"#112233"}
	original.Render.Angle = 45
	original.Server.Port = 9000
	original.Log.Format = "json"

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Source.Kind != source.KindEmbed {
		t.Errorf("expected default source, got %q", cfg.Source.Kind)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("TILEPAT_SOURCE__KIND", "sqlite")
	t.Setenv("TILEPAT_SERVER__PORT", "9191")
	t.Setenv("TILEPAT_WARM_CONCURRENCY", "2")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Source.Kind != source.KindSQLite {
		t.Errorf("env override failed: got %q, want %q", loaded.Source.Kind, source.KindSQLite)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("nested env override failed: got %d, want 9191", loaded.Server.Port)
	}
	if loaded.WarmConcurrency != 2 {
		t.Errorf("warm_concurrency = %d, want 2", loaded.WarmConcurrency)
	}
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("source: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"TILEPAT_PALETTE", "palette"},
		{"TILEPAT_SOURCE__BASE_URL", "source.base_url"},
		{"TILEPAT_RENDER__STROKE_WIDTH", "render.stroke_width"},
	}
	for _, tt := range tests {
		if got := envKey(tt.input); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown source", func(c *Config) { c.Source.Kind = "ftp" }},
		{"dir without path", func(c *Config) { c.Source.Kind = source.KindDir; c.Source.Dir = "" }},
		{"http without url", func(c *Config) { c.Source.Kind = source.KindHTTP }},
		{"sqlite without path", func(c *Config) { c.Source.Kind = source.KindSQLite; c.Source.DBPath = "" }},
		{"negative timeout", func(c *Config) { c.Source.FetchTimeoutSeconds = -1 }},
		{"empty palette", func(c *Config) { c.Palette = nil }},
		{"bad colour", func(c *Config) { c.Palette = []string{"chartreuse"} }},
		{"zero scale", func(c *Config) { c.Render.Scale = 0 }},
		{"negative stroke", func(c *Config) { c.Render.StrokeWidth = -1 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"negative warm concurrency", func(c *Config) { c.WarmConcurrency = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNormalizedPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette = []string{"ABC", "#DDEEFF"}
	got, err := cfg.NormalizedPalette()
	if err != nil {
		t.Fatalf("NormalizedPalette: %v", err)
	}
	if diff := cmp.Diff([]string{"#abc", "#ddeeff"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
