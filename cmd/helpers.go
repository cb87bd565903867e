package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/tilepat/internal/assets"
	"github.com/ziadkadry99/tilepat/internal/config"
	"github.com/ziadkadry99/tilepat/internal/db"
	"github.com/ziadkadry99/tilepat/internal/geocache"
	"github.com/ziadkadry99/tilepat/internal/logging"
	"github.com/ziadkadry99/tilepat/internal/palette"
	"github.com/ziadkadry99/tilepat/internal/patterns"
	"github.com/ziadkadry99/tilepat/internal/source"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `tilepat init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the logger from config; --verbose forces debug level.
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logging.New(level, cfg.Log.Format)
}

// openSource creates the configured geometry source. The returned close
// function releases whatever the source holds open.
func openSource(cfg *config.Config) (source.Source, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Source.Kind {
	case source.KindEmbed:
		return source.NewFS(assets.FS()), noop, nil
	case source.KindDir:
		if _, err := os.Stat(cfg.Source.Dir); err != nil {
			return nil, nil, fmt.Errorf("asset directory: %w", err)
		}
		return source.NewFS(os.DirFS(cfg.Source.Dir)), noop, nil
	case source.KindHTTP:
		src := source.NewHTTP(cfg.Source.BaseURL, cfg.Source.FetchTimeout())
		return src, src.Close, nil
	case source.KindSQLite:
		database, err := db.Open(cfg.Source.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return source.NewSQL(database), database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

// newService wires the configured source, cache and renderer together.
func newService(cfg *config.Config, logger *logrus.Logger) (*patterns.Service, func() error, error) {
	src, closeFn, err := openSource(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s source: %w", cfg.Source.Kind, err)
	}
	cache := geocache.New(src, geocache.Options{
		FetchTimeout: cfg.Source.FetchTimeout(),
		Logger:       logger,
	})
	return patterns.New(cache, cfg.Render), closeFn, nil
}

// resolvePalette parses a --colors value, falling back to the configured palette.
func resolvePalette(cfg *config.Config, colors string) ([]string, error) {
	def, err := cfg.NormalizedPalette()
	if err != nil {
		return nil, err
	}
	return palette.Parse(colors, def)
}

// setup is the common prologue of commands that render patterns.
func setup() (*config.Config, *logrus.Logger, *patterns.Service, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	svc, closeFn, err := newService(cfg, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cfg, logger, svc, closeFn, nil
}
