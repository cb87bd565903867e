// Package gallery renders a static HTML preview of every catalog pattern.
package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/tilepat/internal/patterns"
	"github.com/ziadkadry99/tilepat/internal/progress"
)

// Generator writes the gallery for a pattern service.
type Generator struct {
	Service  *patterns.Service
	Palette  []string
	Title    string
	Intro    []byte // markdown; DefaultIntro when nil
	Warm     int    // concurrent prefetches before rendering; 0 skips warm-up
	Reporter progress.Reporter
	Logger   *logrus.Logger
}

// Tile is one rendered pattern in the gallery and in catalog.json.
type Tile struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	File       string       `json:"file"`
	Background template.CSS `json:"-"`
}

type pageData struct {
	Title   string
	Intro   template.HTML
	Palette []string
	Tiles   []Tile
}

// Generate renders index.html, catalog.json and one SVG per pattern into
// outDir. It returns the number of tiles written.
func (g *Generator) Generate(ctx context.Context, outDir string) (int, error) {
	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	logger := g.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	entries := g.Service.Catalog()
	if g.Warm > 0 {
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		if err := g.Service.Cache().Warm(ctx, ids, g.Warm); err != nil {
			return 0, err
		}
	}

	if err := os.MkdirAll(filepath.Join(outDir, "patterns"), 0o755); err != nil {
		return 0, err
	}

	intro, err := renderIntro(g.Intro)
	if err != nil {
		return 0, fmt.Errorf("rendering intro: %w", err)
	}

	reporter.Start(len(entries))
	tiles := make([]Tile, 0, len(entries))
	for i, e := range entries {
		svg, err := g.Service.SVG(ctx, e.ID, g.Palette)
		if err != nil {
			return 0, err
		}
		file := "patterns/" + e.ID + ".svg"
		if err := os.WriteFile(filepath.Join(outDir, filepath.FromSlash(file)), []byte(svg), 0o644); err != nil {
			return 0, err
		}
		url, err := g.Service.SVGDataURL(ctx, e.ID, g.Palette)
		if err != nil {
			return 0, err
		}
		tiles = append(tiles, Tile{
			ID:         e.ID,
			Title:      e.Title,
			File:       file,
			Background: template.CSS(url),
		})
		reporter.Update(i+1, e.ID)
	}
	reporter.Finish()

	if err := writeCatalog(tiles, filepath.Join(outDir, "catalog.json")); err != nil {
		return 0, fmt.Errorf("writing catalog: %w", err)
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}
	title := g.Title
	if title == "" {
		title = "Pattern gallery"
	}
	data := pageData{
		Title:   title,
		Intro:   intro,
		Palette: g.Palette,
		Tiles:   tiles,
	}

	f, err := os.Create(filepath.Join(outDir, "index.html"))
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return 0, fmt.Errorf("executing page template: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"dir":   outDir,
		"tiles": len(tiles),
	}).Info("gallery written")
	return len(tiles), nil
}

func renderIntro(src []byte) (template.HTML, error) {
	if src == nil {
		src = []byte(DefaultIntro)
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func writeCatalog(tiles []Tile, path string) error {
	data, err := json.MarshalIndent(tiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
