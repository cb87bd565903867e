package patterns

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/tilepat/internal/palette"
)

// liveRenderTimeout bounds each rendered message on a live connection.
const liveRenderTimeout = 30 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveRequest is the incoming WebSocket message format.
type liveRequest struct {
	Type     string   `json:"type"` // "render" or "preview"
	ID       string   `json:"id,omitempty"`
	Geometry string   `json:"geometry,omitempty"` // descriptor text for "preview"
	Colors   []string `json:"colors,omitempty"`
}

// liveResponse is the outgoing WebSocket message format.
type liveResponse struct {
	Type       string   `json:"type"` // "background" or "error"
	ID         string   `json:"id,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	Background string   `json:"background,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// handleLive re-renders backgrounds as a client edits its palette. Each
// message is answered in order on the same connection.
func handleLive(svc *Service, defaultPalette []string, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Warn("live: websocket upgrade")
			return
		}
		defer conn.Close()

		// Renders outlive the request's deadline middleware.
		base := context.WithoutCancel(r.Context())

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.WithError(err).Warn("live: websocket read")
				}
				return
			}

			var req liveRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendLive(conn, liveResponse{Type: "error", Error: "invalid message format"}, logger)
				continue
			}

			ctx, cancel := context.WithTimeout(base, liveRenderTimeout)
			resp := renderLive(ctx, svc, defaultPalette, req)
			cancel()
			sendLive(conn, resp, logger)
		}
	}
}

func renderLive(ctx context.Context, svc *Service, defaultPalette []string, req liveRequest) liveResponse {
	fail := func(msg string) liveResponse {
		return liveResponse{Type: "error", ID: req.ID, Error: msg}
	}

	colors := defaultPalette
	if len(req.Colors) > 0 {
		var err error
		if colors, err = palette.FromSlice(req.Colors); err != nil {
			return fail(err.Error())
		}
	}

	var (
		bg  string
		err error
	)
	switch req.Type {
	case "render":
		if _, ok := svc.Lookup(req.ID); !ok {
			return fail("unknown pattern: " + req.ID)
		}
		bg, err = svc.SVGDataURL(ctx, req.ID, colors)
	case "preview":
		if req.Geometry == "" {
			return fail("geometry is required")
		}
		bg, err = svc.SVGBackground(req.Geometry, colors)
	default:
		return fail("unknown message type: " + req.Type)
	}
	if err != nil {
		return fail(err.Error())
	}
	return liveResponse{Type: "background", ID: req.ID, Colors: colors, Background: bg}
}

func sendLive(conn *websocket.Conn, resp liveResponse, logger *logrus.Logger) {
	if err := conn.WriteJSON(resp); err != nil {
		logger.WithError(err).Warn("live: websocket write")
	}
}
