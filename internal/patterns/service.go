// Package patterns is the entry point for resolving catalog patterns to
// renderable backgrounds.
package patterns

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/tilepat/internal/catalog"
	"github.com/ziadkadry99/tilepat/internal/geocache"
	"github.com/ziadkadry99/tilepat/internal/geometry"
	"github.com/ziadkadry99/tilepat/internal/synth"
)

// Service resolves pattern ids through a geometry cache and synthesizes
// backgrounds for a palette.
type Service struct {
	cache   *geocache.Cache
	opts    synth.Options
	entries []catalog.Entry
	index   map[string]catalog.Entry
}

// New creates a Service. The cache is owned by the caller and may be shared.
func New(cache *geocache.Cache, opts synth.Options) *Service {
	entries := catalog.All()
	index := make(map[string]catalog.Entry, len(entries))
	for _, e := range entries {
		index[e.ID] = e
	}
	return &Service{cache: cache, opts: opts, entries: entries, index: index}
}

// Catalog returns every pattern in catalog order.
func (s *Service) Catalog() []catalog.Entry {
	out := make([]catalog.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Lookup returns the catalog entry for id.
func (s *Service) Lookup(id string) (catalog.Entry, bool) {
	e, ok := s.index[id]
	return e, ok
}

// Cache returns the geometry cache backing the service.
func (s *Service) Cache() *geocache.Cache { return s.cache }

// Options returns the rendering options applied to every background.
func (s *Service) Options() synth.Options { return s.opts }

// RawGeometry returns the descriptor text for id. Retrieval errors are
// returned as the cache reports them.
func (s *Service) RawGeometry(ctx context.Context, id string) (string, error) {
	return s.cache.Get(ctx, id)
}

// SVG returns the minified SVG document for id rendered with palette.
func (s *Service) SVG(ctx context.Context, id string, palette []string) (string, error) {
	text, err := s.cache.Get(ctx, id)
	if err != nil {
		return "", err
	}
	d, err := geometry.ParseString(text)
	if err != nil {
		return "", fmt.Errorf("pattern %s: %w", id, err)
	}
	return synth.Minify(synth.Render(d, palette, s.opts)), nil
}

// SVGDataURL returns id rendered with palette as a CSS url() value.
func (s *Service) SVGDataURL(ctx context.Context, id string, palette []string) (string, error) {
	svg, err := s.SVG(ctx, id, palette)
	if err != nil {
		return "", err
	}
	return synth.DataURL(svg), nil
}

// SVGBackground renders descriptor text the caller already holds.
func (s *Service) SVGBackground(text string, palette []string) (string, error) {
	d, err := geometry.ParseString(text)
	if err != nil {
		return "", err
	}
	return synth.Background(d, palette, s.opts), nil
}
