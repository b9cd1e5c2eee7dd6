package events

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const writeTimeout = 10 * time.Second

// WSHandler streams events to websocket clients
type WSHandler struct {
	manager *Manager
	log     zerolog.Logger
}

// NewWSHandler creates a new websocket feed handler
func NewWSHandler(manager *Manager, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		manager: manager,
		log:     log.With().Str("handler", "events_ws").Logger(),
	}
}

// ServeHTTP upgrades the connection and forwards events until the client
// disconnects.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ch, cancel := h.manager.Subscribe()
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			writeCtx, done := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, event)
			done()
			if err != nil {
				h.log.Debug().Err(err).Msg("Websocket client gone")
				return
			}
		}
	}
}
