package realtime

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FrameConn is the part of *websocket.Conn the hub uses.
type FrameConn interface {
	ReadJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
}

// WebSocketConn wraps the connection so the hub does not depend on the transport.
type WebSocketConn struct {
	Conn FrameConn
}

func NewWebSocketConn(c FrameConn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

// Serve registers the connection for userID and pumps hub events to it until
// the peer goes away. Incoming frames are only read to detect disconnects.
// It returns only after the writer has stopped using c.
func (h *Hub) Serve(c FrameConn, userID uuid.UUID) {
	client := NewClient(userID, NewWebSocketConn(c))
	h.RegisterClient(client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Err(err).Str("user", userID.String()).Msg("ws write")
				return
			}
		}
	}()

	h.readLoop(c, userID)

	h.UnregisterClient(client)
	<-done
}

func (h *Hub) readLoop(c FrameConn, userID uuid.UUID) {
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			log.Debug().Err(err).Str("user", userID.String()).Msg("ws closed")
			return
		}
		if t, _ := payload["type"].(string); t == "ping" {
			h.SendToUser(userID, map[string]string{"type": "pong"})
		}
	}
}
