// Package source retrieves raw geometry descriptor text for a pattern id.
package source

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned when no geometry exists for the requested id.
var ErrNotFound = errors.New("geometry not found")

// Source fetches the descriptor text stored for a pattern identifier.
type Source interface {
	Fetch(ctx context.Context, id string) (string, error)
}

// Kind names a Source implementation in configuration.
type Kind string

const (
	KindEmbed  Kind = "embed"
	KindDir    Kind = "dir"
	KindHTTP   Kind = "http"
	KindSQLite Kind = "sqlite"
)

// ResourcePath returns the conventional location of an id's descriptor,
// relative to an asset root.
func ResourcePath(id string) string {
	return path.Join("patterns", id+".json")
}

// checkID rejects identifiers that could escape the resource directory.
func checkID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return nil
}
