package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/docker/docker/api/types/events"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Enforce same-origin policy for WebSocket upgrades
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		// Allow localhost for development/proxying
		if strings.Contains(origin, "://localhost:") || strings.Contains(origin, "://127.0.0.1:") {
			return true
		}

		host := r.Host
		if len(origin) > 7 && origin[:7] == "http://" {
			return origin[7:] == host
		}
		if len(origin) > 8 && origin[:8] == "https://" {
			return origin[8:] == host
		}
		return false
	},
}

// engineEvent is the wire shape forwarded to websocket clients.
type engineEvent struct {
	Type       string            `json:"type"`
	Action     string            `json:"action"`
	ID         string            `json:"id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Time       int64             `json:"time"`
}

// handleEventsWS streams engine events to an authenticated client until
// it disconnects.
func (s *Server) handleEventsWS(w http.ResponseWriter, r *http.Request) {
	if _, denial := s.gate.RequireAuth(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Read pump: the client never sends data, but reading surfaces
	// disconnects and close frames.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	msgCh, errCh := s.engine.Events(ctx, events.ListOptions{})
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				s.logger.Warn("engine event stream closed", "error", err)
			}
			return
		case msg := <-msgCh:
			payload, err := json.Marshal(engineEvent{
				Type:       string(msg.Type),
				Action:     string(msg.Action),
				ID:         msg.Actor.ID,
				Attributes: msg.Actor.Attributes,
				Time:       msg.Time,
			})
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}
