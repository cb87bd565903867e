package config

import (
	"time"

	"github.com/ziadkadry99/tilepat/internal/source"
	"github.com/ziadkadry99/tilepat/internal/synth"
)

// Config is the top-level tilepat configuration, corresponding to .tilepat.yml.
type Config struct {
	Source          SourceConfig  `yaml:"source" koanf:"source"`
	Render          synth.Options `yaml:"render" koanf:"render"`
	Palette         []string      `yaml:"palette" koanf:"palette"`
	Server          ServerConfig  `yaml:"server" koanf:"server"`
	Log             LogConfig     `yaml:"log" koanf:"log"`
	WarmConcurrency int           `yaml:"warm_concurrency" koanf:"warm_concurrency"`
}

// SourceConfig selects where geometry descriptors are fetched from.
type SourceConfig struct {
	Kind                source.Kind `yaml:"kind" koanf:"kind"`
	Dir                 string      `yaml:"dir" koanf:"dir"`
	BaseURL             string      `yaml:"base_url" koanf:"base_url"`
	DBPath              string      `yaml:"db_path" koanf:"db_path"`
	FetchTimeoutSeconds int         `yaml:"fetch_timeout_seconds" koanf:"fetch_timeout_seconds"`
}

// FetchTimeout returns the per-retrieval timeout.
func (s SourceConfig) FetchTimeout() time.Duration {
	return time.Duration(s.FetchTimeoutSeconds) * time.Second
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Warm            bool `yaml:"warm" koanf:"warm"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
