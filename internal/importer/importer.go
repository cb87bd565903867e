// Package importer loads geometry resources into the sqlite store so the
// sqlite source can serve them.
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/tilepat/internal/db"
	"github.com/ziadkadry99/tilepat/internal/geometry"
	"github.com/ziadkadry99/tilepat/internal/progress"
	"github.com/ziadkadry99/tilepat/internal/verify"
)

// Run describes one import.
type Run struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Count      int       `json:"count"`
}

// Importer copies validated geometry into the database.
type Importer struct {
	db       *db.DB
	reporter progress.Reporter
	log      *logrus.Logger
}

// New creates an Importer. A nil reporter discards progress.
func New(database *db.DB, reporter progress.Reporter, logger *logrus.Logger) *Importer {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Importer{db: database, reporter: reporter, log: logger}
}

// Import validates every resource in fsys and upserts it in a single
// transaction. A resource that does not parse aborts the whole import.
func (im *Importer) Import(ctx context.Context, fsys fs.FS, sourceName string) (*Run, error) {
	files, err := doublestar.Glob(fsys, verify.ResourcePattern)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	sort.Strings(files)

	run := &Run{
		ID:        uuid.New().String(),
		Source:    sourceName,
		StartedAt: time.Now().UTC(),
	}

	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO import_runs (id, source, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Source, formatTime(run.StartedAt),
	); err != nil {
		return nil, fmt.Errorf("recording import run: %w", err)
	}

	im.reporter.Start(len(files))
	defer im.reporter.Finish()

	for i, file := range files {
		id := strings.TrimSuffix(path.Base(file), ".json")
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		if _, err := geometry.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO geometries (id, body, import_id, imported_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				body = excluded.body,
				import_id = excluded.import_id,
				imported_at = excluded.imported_at`,
			id, string(data), run.ID, formatTime(run.StartedAt),
		); err != nil {
			return nil, fmt.Errorf("storing %s: %w", id, err)
		}
		run.Count++
		im.reporter.Update(i+1, id)
	}

	run.FinishedAt = time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE import_runs SET finished_at = ?, count = ? WHERE id = ?`,
		formatTime(run.FinishedAt), run.Count, run.ID,
	); err != nil {
		return nil, fmt.Errorf("finishing import run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	im.log.WithFields(logrus.Fields{
		"run":    run.ID,
		"source": run.Source,
		"count":  run.Count,
	}).Info("geometry imported")
	return run, nil
}

// Runs returns past imports, newest first.
func (im *Importer) Runs(ctx context.Context) ([]Run, error) {
	rows, err := im.db.QueryContext(ctx, `
		SELECT id, source, started_at, COALESCE(finished_at, ''), count
		FROM import_runs ORDER BY started_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying import runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.Source, &started, &finished, &r.Count); err != nil {
			return nil, err
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Count returns how many geometries are stored.
func (im *Importer) Count(ctx context.Context) (int, error) {
	var n int
	if err := im.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM geometries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting geometries: %w", err)
	}
	return n, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
