package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/tilepat/internal/palette"
	"github.com/ziadkadry99/tilepat/internal/source"
)

// EnvPrefix prefixes environment overrides. Nested keys use "__", so
// TILEPAT_SERVER__PORT sets server.port.
const EnvPrefix = "TILEPAT_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TILEPAT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps TILEPAT_SOURCE__BASE_URL to source.base_url.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validKinds is the set of recognized source kinds.
var validKinds = map[source.Kind]bool{
	source.KindEmbed:  true,
	source.KindDir:    true,
	source.KindHTTP:   true,
	source.KindSQLite: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validKinds[c.Source.Kind] {
		return fmt.Errorf("invalid source.kind %q: must be one of embed, dir, http, sqlite", c.Source.Kind)
	}
	switch c.Source.Kind {
	case source.KindDir:
		if c.Source.Dir == "" {
			return fmt.Errorf("source.dir is required for the dir source")
		}
	case source.KindHTTP:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("source.base_url is required for the http source")
		}
	case source.KindSQLite:
		if c.Source.DBPath == "" {
			return fmt.Errorf("source.db_path is required for the sqlite source")
		}
	}
	if c.Source.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("source.fetch_timeout_seconds must be non-negative")
	}

	if len(c.Palette) == 0 {
		return fmt.Errorf("palette must name at least one color")
	}
	if _, err := palette.FromSlice(c.Palette); err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	if c.Render.Scale <= 0 {
		return fmt.Errorf("render.scale must be positive")
	}
	if c.Render.StrokeWidth < 0 {
		return fmt.Errorf("render.stroke_width must be non-negative")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}

	if c.WarmConcurrency < 0 {
		return fmt.Errorf("warm_concurrency must be non-negative")
	}

	return nil
}

// NormalizedPalette returns the configured palette in canonical form.
func (c *Config) NormalizedPalette() ([]string, error) {
	return palette.FromSlice(c.Palette)
}
