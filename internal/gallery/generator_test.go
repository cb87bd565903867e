package gallery

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/tilepat/internal/assets"
	"github.com/ziadkadry99/tilepat/internal/catalog"
	"github.com/ziadkadry99/tilepat/internal/geocache"
	"github.com/ziadkadry99/tilepat/internal/logging"
	"github.com/ziadkadry99/tilepat/internal/patterns"
	"github.com/ziadkadry99/tilepat/internal/source"
	"github.com/ziadkadry99/tilepat/internal/synth"
)

func newGenerator() *Generator {
	cache := geocache.New(source.NewFS(assets.FS()), geocache.Options{Logger: logging.Discard()})
	return &Generator{
		Service: patterns.New(cache, synth.DefaultOptions()),
		Palette: []string{"#ecc94b", "#4a5568"},
		Warm:    4,
		Logger:  logging.Discard(),
	}
}

func TestGenerate(t *testing.T) {
	outDir := t.TempDir()
	g := newGenerator()

	n, err := g.Generate(context.Background(), outDir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	entries := catalog.All()
	if n != len(entries) {
		t.Errorf("Generate returned %d tiles, want %d", n, len(entries))
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	page := string(index)
	for _, e := range entries {
		if !strings.Contains(page, `id="`+e.ID+`"`) {
			t.Errorf("index.html missing tile %s", e.ID)
		}
		if !strings.Contains(page, e.Title) {
			t.Errorf("index.html missing title %q", e.Title)
		}
		if _, err := os.Stat(filepath.Join(outDir, "patterns", e.ID+".svg")); err != nil {
			t.Errorf("missing svg for %s: %v", e.ID, err)
		}
	}
	if strings.Contains(page, "ZgotmplZ") {
		t.Error("template rejected a CSS value")
	}
	if !strings.Contains(page, "data:image/svg+xml;utf8,") {
		t.Error("expected data URL backgrounds")
	}

	stats := g.Service.Cache().Stats()
	if stats.Fetches != int64(len(entries)) {
		t.Errorf("fetches = %d, want one per pattern (%d)", stats.Fetches, len(entries))
	}
}

func TestGenerateCatalogJSON(t *testing.T) {
	outDir := t.TempDir()
	if _, err := newGenerator().Generate(context.Background(), outDir); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "catalog.json"))
	if err != nil {
		t.Fatalf("reading catalog.json: %v", err)
	}
	var tiles []Tile
	if err := json.Unmarshal(data, &tiles); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(tiles) == 0 {
		t.Fatal("expected tiles in catalog.json")
	}
	if tiles[0].ID != "polka-dots" || tiles[0].File != "patterns/polka-dots.svg" {
		t.Errorf("first tile = %+v", tiles[0])
	}
}

func TestRenderIntro(t *testing.T) {
	got, err := renderIntro(nil)
	if err != nil {
		t.Fatalf("renderIntro: %v", err)
	}
	if !strings.Contains(string(got), `<h1 id="pattern-gallery">`) {
		t.Errorf("expected heading with auto id, got:\n%s", got)
	}
	if !strings.Contains(string(got), "<pre") {
		t.Error("expected highlighted code block")
	}

	got, err = renderIntro([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("renderIntro: %v", err)
	}
	if !strings.Contains(string(got), "<table>") {
		t.Errorf("expected GFM table, got:\n%s", got)
	}
}

func TestGenerateFailsOnFetchError(t *testing.T) {
	cache := geocache.New(source.NewFS(os.DirFS(t.TempDir())), geocache.Options{Logger: logging.Discard()})
	g := &Generator{
		Service: patterns.New(cache, synth.DefaultOptions()),
		Palette: []string{"#000"},
		Logger:  logging.Discard(),
	}
	if _, err := g.Generate(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error when geometry is missing")
	}
}
