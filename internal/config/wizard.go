package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/tilepat/internal/palette"
	"github.com/ziadkadry99/tilepat/internal/source"
)

// detectSourceKind suggests a dir source when an asset directory is present.
func detectSourceKind() (source.Kind, string) {
	for _, dir := range []string{"assets", "public", "static"} {
		if info, err := os.Stat(dir + "/patterns"); err == nil && info.IsDir() {
			return source.KindDir, dir
		}
	}
	return source.KindEmbed, ""
}

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to tilepat! Let's configure your pattern service.")
	fmt.Println()

	cfg := DefaultConfig()

	kind, dir := detectSourceKind()
	if dir != "" {
		fmt.Printf("Detected geometry resources in %s/patterns\n\n", dir)
		cfg.Source.Dir = dir
	}

	// 1. Geometry source.
	kinds := []source.Kind{source.KindEmbed, source.KindDir, source.KindHTTP, source.KindSQLite}
	cursor := 0
	for i, k := range kinds {
		if k == kind {
			cursor = i
		}
	}
	sourcePrompt := promptui.Select{
		Label: "Where should geometry be fetched from",
		Items: []string{
			"embed:  resources compiled into the binary",
			"dir:    a local asset directory",
			"http:   a static asset server",
			"sqlite: a database filled by `tilepat import`",
		},
		CursorPos: cursor,
	}
	idx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source selection: %w", err)
	}
	cfg.Source.Kind = kinds[idx]

	// 2. Source location.
	switch cfg.Source.Kind {
	case source.KindDir:
		cfg.Source.Dir, err = ask("Asset directory (containing patterns/)", cfg.Source.Dir, nil)
	case source.KindHTTP:
		cfg.Source.BaseURL, err = ask("Asset base URL", "https://", nil)
	case source.KindSQLite:
		cfg.Source.DBPath, err = ask("Database path", cfg.Source.DBPath, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("source location: %w", err)
	}

	// 3. Default palette.
	colors, err := ask("Default palette (comma-separated hex colors)", "ecc94b,4a5568", func(s string) error {
		_, err := palette.Parse(s, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	if cfg.Palette, err = palette.Parse(colors, DefaultPalette); err != nil {
		return nil, err
	}

	// 4. Server port.
	portStr, err := ask("HTTP port", strconv.Itoa(cfg.Server.Port), func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 65535 {
			return fmt.Errorf("port must be a number between 0 and 65535")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func ask(label, def string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Default:  def,
		Validate: validate,
	}
	return p.Run()
}
