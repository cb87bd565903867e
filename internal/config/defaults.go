package config

import (
	"github.com/ziadkadry99/tilepat/internal/source"
	"github.com/ziadkadry99/tilepat/internal/synth"
)

// DefaultPalette is used when neither the config nor a request names colours.
var DefaultPalette = []string{"#ecc94b", "#4a5568"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:                source.KindEmbed,
			Dir:                 "assets",
			DBPath:              ".tilepat/patterns.db",
			FetchTimeoutSeconds: 10,
		},
		Render:  synth.DefaultOptions(),
		Palette: append([]string(nil), DefaultPalette...),
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		WarmConcurrency: 8,
	}
}
