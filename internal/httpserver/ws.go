// internal/httpserver/ws.go
//
// WebSocket transport for live play: the client streams key events, the
// server answers each one with the updated session view. Events funnel
// through the same per-player manager as the REST handlers, so the
// one-mutator-at-a-time model holds across both transports.

package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mtoivan/sanagrid/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	wsWriteWait = 10 * time.Second

	// Time allowed to read the next message from the peer.
	wsReadWait = 60 * time.Second

	// Maximum message size allowed from peer.
	wsMaxMessageSize = 512
)

// handleWS upgrades the connection and serves one event loop on it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == s.cfg.ClientOrigin
		},
	}

	m := s.manager(w, r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsMaxMessageSize)

	// Initial view so the client can render without a separate GET.
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(m.View()); err != nil {
		return
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsReadWait))
		var ev session.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
		m.Apply(r.Context(), ev)
		if ev.Event == session.EventSubmit {
			s.recordDailyResult(r, m)
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(m.View()); err != nil {
			return
		}
	}
}
