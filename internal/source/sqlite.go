package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ziadkadry99/tilepat/internal/db"
)

// SQLSource reads descriptors imported into the geometries table.
type SQLSource struct {
	db *db.DB
}

// NewSQL creates a Source backed by the given database.
func NewSQL(database *db.DB) *SQLSource {
	return &SQLSource{db: database}
}

// Fetch implements Source.
func (s *SQLSource) Fetch(ctx context.Context, id string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM geometries WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("querying geometry %s: %w", id, err)
	}
	return body, nil
}
