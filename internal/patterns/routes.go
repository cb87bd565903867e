package patterns

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/tilepat/internal/geometry"
	"github.com/ziadkadry99/tilepat/internal/palette"
	"github.com/ziadkadry99/tilepat/internal/source"
)

// RegisterRoutes mounts pattern endpoints under /api on the given router.
// defaultPalette is used when a request does not name any colours.
func RegisterRoutes(r chi.Router, svc *Service, defaultPalette []string, logger *logrus.Logger) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r.Route("/api/patterns", func(r chi.Router) {
		r.Get("/", handleCatalog(svc))
		r.Route("/{id}", func(r chi.Router) {
			r.Use(requireKnown(svc))
			r.Get("/geometry", handleGeometry(svc))
			r.Get("/background", handleBackground(svc, defaultPalette))
			r.Get("/svg", handleSVG(svc, defaultPalette))
		})
	})
	r.Get("/api/cache", handleCacheStats(svc))
	r.Get("/ws/preview", handleLive(svc, defaultPalette, logger))
}

type patternView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	State string `json:"state"`
}

func handleCatalog(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := svc.Catalog()
		views := make([]patternView, len(entries))
		for i, e := range entries {
			views[i] = patternView{ID: e.ID, Title: e.Title, State: svc.Cache().State(e.ID).String()}
		}
		writeJSON(w, http.StatusOK, views)
	}
}

// requireKnown rejects ids outside the catalog before they reach the cache.
func requireKnown(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := svc.Lookup(chi.URLParam(r, "id")); !ok {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown pattern"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleGeometry(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := svc.RawGeometry(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(text))
	}
}

func handleBackground(svc *Service, defaultPalette []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		colors, err := palette.Parse(r.URL.Query().Get("colors"), defaultPalette)
		if err != nil {
			writeError(w, err)
			return
		}

		bg, err := svc.SVGDataURL(r.Context(), id, colors)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"id":         id,
			"colors":     colors,
			"background": bg,
		})
	}
}

func handleSVG(svc *Service, defaultPalette []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colors, err := palette.Parse(r.URL.Query().Get("colors"), defaultPalette)
		if err != nil {
			writeError(w, err)
			return
		}

		svg, err := svc.SVG(r.Context(), chi.URLParam(r, "id"), colors)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(svg))
	}
}

func handleCacheStats(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Cache().Stats())
	}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, palette.ErrInvalidColor):
		return http.StatusBadRequest
	case errors.Is(err, source.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, geometry.ErrMalformed):
		return http.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
