package patterns

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/tilepat/internal/assets"
	"github.com/ziadkadry99/tilepat/internal/logging"
	"github.com/ziadkadry99/tilepat/internal/source"
	"github.com/ziadkadry99/tilepat/internal/synth"
)

func setupRouter(t *testing.T, src source.Source) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, newService(src), []string{"#ecc94b"}, logging.Discard())
	return r
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalogRoute(t *testing.T) {
	r := setupRouter(t, source.NewFS(assets.FS()))

	w := doGet(r, "/api/patterns")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var views []patternView
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(views) == 0 || views[0].ID != "polka-dots" || views[0].State != "empty" {
		t.Errorf("unexpected first entry %+v", views)
	}
}

func TestGeometryRoute(t *testing.T) {
	r := setupRouter(t, source.NewFS(assets.FS()))

	w := doGet(r, "/api/patterns/chevron-3/geometry")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("geometry is not JSON: %v", err)
	}
	if doc["mode"] != "stroke-join" {
		t.Errorf("mode = %v", doc["mode"])
	}
}

func TestBackgroundRoute(t *testing.T) {
	r := setupRouter(t, source.NewFS(assets.FS()))

	w := doGet(r, "/api/patterns/waves-2/background?colors=ff0000,00FF00")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		ID         string   `json:"id"`
		Colors     []string `json:"colors"`
		Background string   `json:"background"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.ID != "waves-2" {
		t.Errorf("id = %q", body.ID)
	}
	if len(body.Colors) != 2 || body.Colors[1] != "#00ff00" {
		t.Errorf("colors = %v", body.Colors)
	}
	if !strings.HasPrefix(body.Background, synth.DataURLPrefix) {
		t.Errorf("background = %q", body.Background)
	}
	if !strings.Contains(body.Background, "%2300ff00") {
		t.Error("background should use the requested colours")
	}
}

func TestSVGRouteDefaultPalette(t *testing.T) {
	r := setupRouter(t, source.NewFS(assets.FS()))

	w := doGet(r, "/api/patterns/polka-dots/svg")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "fill='#ecc94b'") {
		t.Errorf("expected default palette colour in %s", w.Body.String())
	}
}

func TestRouteErrors(t *testing.T) {
	tests := []struct {
		name string
		src  source.Source
		path string
		want int
	}{
		{"unknown pattern", source.NewFS(assets.FS()), "/api/patterns/nope/svg", http.StatusNotFound},
		{"bad colour", source.NewFS(assets.FS()), "/api/patterns/waves-1/svg?colors=red", http.StatusBadRequest},
		{"missing resource", source.NewFS(fstest.MapFS{}), "/api/patterns/waves-1/geometry", http.StatusNotFound},
		{"malformed resource", source.NewFS(fstest.MapFS{
			"patterns/waves-1.json": {Data: []byte(`{"path":[]}`)},
		}), "/api/patterns/waves-1/background", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(setupRouter(t, tt.src), tt.path)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestCacheStatsRoute(t *testing.T) {
	r := setupRouter(t, source.NewFS(assets.FS()))
	doGet(r, "/api/patterns/waves-1/geometry")
	doGet(r, "/api/patterns/waves-1/geometry")

	w := doGet(r, "/api/cache")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stats["fetches"] != 1 || stats["hits"] != 1 || stats["resolved"] != 1 {
		t.Errorf("unexpected stats %v", stats)
	}
}
