// Package verify cross-checks the pattern catalog against the geometry
// resources available to a source.
package verify

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/tilepat/internal/catalog"
	"github.com/ziadkadry99/tilepat/internal/geometry"
)

// ErrCatalogMismatch is returned when catalog ids and resources diverge.
var ErrCatalogMismatch = errors.New("catalog and geometry resources differ")

// ResourcePattern matches geometry resources inside an asset tree.
const ResourcePattern = "patterns/**/*.json"

// Problem is a resource that exists but does not parse.
type Problem struct {
	ID  string
	Err error
}

// Report is the outcome of a cross-check.
type Report struct {
	Checked    int
	Missing    []string // catalog ids with no resource
	Orphans    []string // resources with no catalog id
	Duplicates []string // resource basenames found more than once
	Invalid    []Problem
}

// OK reports whether the catalog and resources agree exactly.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Orphans) == 0 && len(r.Duplicates) == 0 && len(r.Invalid) == 0
}

// Err returns nil for a clean report, otherwise an error wrapping
// ErrCatalogMismatch (or geometry.ErrMalformed for unparsable resources).
func (r *Report) Err() error {
	var parts []string
	if len(r.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing resources: %s", strings.Join(r.Missing, ", ")))
	}
	if len(r.Orphans) > 0 {
		parts = append(parts, fmt.Sprintf("resources without catalog entry: %s", strings.Join(r.Orphans, ", ")))
	}
	if len(r.Duplicates) > 0 {
		parts = append(parts, fmt.Sprintf("duplicate resources: %s", strings.Join(r.Duplicates, ", ")))
	}
	if len(parts) > 0 {
		return fmt.Errorf("%w: %s", ErrCatalogMismatch, strings.Join(parts, "; "))
	}
	if len(r.Invalid) > 0 {
		return fmt.Errorf("%s: %w", r.Invalid[0].ID, r.Invalid[0].Err)
	}
	return nil
}

// Resources lists the resource basenames (without .json) under fsys, sorted.
// Names found in more than one directory are listed once and returned
// separately as duplicates.
func Resources(fsys fs.FS) (ids []string, duplicates []string, err error) {
	matches, err := doublestar.Glob(fsys, ResourcePattern)
	if err != nil {
		return nil, nil, fmt.Errorf("listing resources: %w", err)
	}

	seen := make(map[string]int, len(matches))
	for _, m := range matches {
		id := strings.TrimSuffix(path.Base(m), ".json")
		seen[id]++
		if seen[id] == 1 {
			ids = append(ids, id)
		} else if seen[id] == 2 {
			duplicates = append(duplicates, id)
		}
	}
	sort.Strings(ids)
	sort.Strings(duplicates)
	return ids, duplicates, nil
}

// Check compares entries with the resources in fsys in both directions and,
// when parse is set, validates that every matching resource parses.
func Check(entries []catalog.Entry, fsys fs.FS, parse bool) (*Report, error) {
	ids, dups, err := Resources(fsys)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(ids))
	for _, id := range ids {
		have[id] = true
	}
	want := make(map[string]bool, len(entries))

	report := &Report{Checked: len(entries), Duplicates: dups}
	for _, e := range entries {
		want[e.ID] = true
		if !have[e.ID] {
			report.Missing = append(report.Missing, e.ID)
			continue
		}
		if parse && !contains(dups, e.ID) {
			if err := parseResource(fsys, e.ID); err != nil {
				report.Invalid = append(report.Invalid, Problem{ID: e.ID, Err: err})
			}
		}
	}
	for _, id := range ids {
		if !want[id] {
			report.Orphans = append(report.Orphans, id)
		}
	}
	return report, nil
}

func parseResource(fsys fs.FS, id string) error {
	data, err := fs.ReadFile(fsys, path.Join("patterns", id+".json"))
	if err != nil {
		// Nested resources are not reachable by the fetch convention.
		return fmt.Errorf("%w: not at patterns/%s.json", geometry.ErrMalformed, id)
	}
	_, err = geometry.Parse(data)
	return err
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
