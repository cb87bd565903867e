package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/ziadkadry99/tilepat/internal/assets"
	"github.com/ziadkadry99/tilepat/internal/db"
)

const wavesJSON = `{"path":["M0 10c5-8 15-8 20 0"],"width":40,"height":20,"mode":"stroke"}`

func TestFSSource(t *testing.T) {
	src := NewFS(fstest.MapFS{
		"patterns/waves-1.json": {Data: []byte(wavesJSON)},
	})
	ctx := context.Background()

	got, err := src.Fetch(ctx, "waves-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != wavesJSON {
		t.Errorf("Fetch = %q, want %q", got, wavesJSON)
	}

	if _, err := src.Fetch(ctx, "waves-9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: expected ErrNotFound, got %v", err)
	}
}

func TestFSSourceRejectsTraversal(t *testing.T) {
	src := NewFS(fstest.MapFS{})
	for _, id := range []string{"", "../secret", "a/b", `a\b`, ".hidden"} {
		if _, err := src.Fetch(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Fetch(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestFSSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := NewFS(fstest.MapFS{"patterns/waves-1.json": {Data: []byte(wavesJSON)}})
	if _, err := src.Fetch(ctx, "waves-1"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFSSourceEmbedded(t *testing.T) {
	src := NewFS(assets.FS())
	if _, err := src.Fetch(context.Background(), "chevron-3"); err != nil {
		t.Errorf("embedded chevron-3: %v", err)
	}
}

func TestHTTPSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assets/patterns/waves-1.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(wavesJSON))
		case "/assets/patterns/broken.json":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	src := NewHTTP(ts.URL+"/assets", 5*time.Second)
	defer src.Close()
	ctx := context.Background()

	got, err := src.Fetch(ctx, "waves-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != wavesJSON {
		t.Errorf("Fetch = %q, want %q", got, wavesJSON)
	}

	if _, err := src.Fetch(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("404: expected ErrNotFound, got %v", err)
	}

	_, err = src.Fetch(ctx, "broken")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("500: expected a generic failure, got %v", err)
	}
}

func TestSQLSource(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.Exec(`INSERT INTO import_runs (id, source) VALUES ('r1', 'test')`); err != nil {
		t.Fatalf("insert run: %v", err)
	}
	if _, err := database.Exec(`INSERT INTO geometries (id, body, import_id) VALUES (?, ?, 'r1')`, "waves-1", wavesJSON); err != nil {
		t.Fatalf("insert geometry: %v", err)
	}

	src := NewSQL(database)
	ctx := context.Background()

	got, err := src.Fetch(ctx, "waves-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != wavesJSON {
		t.Errorf("Fetch = %q, want %q", got, wavesJSON)
	}
	if _, err := src.Fetch(ctx, "waves-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: expected ErrNotFound, got %v", err)
	}
}
