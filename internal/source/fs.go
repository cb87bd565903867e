package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// FSSource reads descriptors from patterns/<id>.json inside a file system,
// typically the embedded assets or os.DirFS of an asset directory.
type FSSource struct {
	fsys fs.FS
}

// NewFS creates a Source over fsys.
func NewFS(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Fetch implements Source.
func (s *FSSource) Fetch(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkID(id); err != nil {
		return "", err
	}

	data, err := fs.ReadFile(s.fsys, ResourcePath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return "", fmt.Errorf("reading geometry %s: %w", id, err)
	}
	return string(data), nil
}
