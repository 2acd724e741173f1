package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// handleSocket accepts a websocket and only listens. No message schema is
// defined for live collaboration, so frames are logged and dropped and the
// server never writes.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.logger.Debug("websocket upgrade failed", "id", sess.ID, "err", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	s.hooks.OnSocket(ctx, 1)
	defer s.hooks.OnSocket(ctx, -1)
	s.logger.Info("websocket connected", "id", sess.ID, "remote", r.RemoteAddr)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket closed", "id", sess.ID, "err", err)
			} else {
				s.logger.Info("websocket disconnected", "id", sess.ID)
			}
			return
		}
		s.logger.Debug("websocket frame", "id", sess.ID, "type", kind, "bytes", len(data))
	}
}
