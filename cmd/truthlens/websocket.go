// cmd/truthlens/websocket.go
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// wsEvent is sent to websocket clients as a verification progresses
type wsEvent struct {
	Type    string   `json:"type"`
	Stage   string   `json:"stage,omitempty"`
	Verdict *Verdict `json:"verdict,omitempty"`
	Error   string   `json:"error,omitempty"`
}

const wsWriteWait = 10 * time.Second

// handleWebsocket accepts {mode, text} messages and streams stage events
// followed by the verdict for each one.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger().Warning("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	requestID := RequestID(r.Context())
	send := func(ev wsEvent) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(ev)
	}

	for {
		var req verifyRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				Logger().Warning("Websocket read error [%s]: %v", requestID, err)
			}
			return
		}

		if !s.limiter.Allow() {
			if err := send(wsEvent{Type: "error", Error: "rate limit exceeded"}); err != nil {
				return
			}
			continue
		}

		if req.Mode == "" {
			req.Mode = ModeText
		}

		var writeErr error
		verdict, ok := s.service.Run(context.WithoutCancel(r.Context()), req.Mode, req.Text, requestID, func(stage string) {
			if writeErr == nil {
				writeErr = send(wsEvent{Type: "stage", Stage: stage})
			}
		})
		if writeErr != nil {
			return
		}

		ev := wsEvent{Type: "result", Verdict: verdict}
		if !ok {
			ev = wsEvent{Type: "error", Error: "text is required"}
		}
		if err := send(ev); err != nil {
			return
		}
	}
}
