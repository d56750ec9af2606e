package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"maitred/internal/dialogue"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// wsReply is one frame sent back over the chat socket.
type wsReply struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleWebSocket speaks the same turn contract as the REST route over
// a long-lived socket: one JSON request in, one JSON reply out.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var req turnRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Error().Err(err).Msg("websocket read failed")
			}
			return
		}
		if req.SessionID == "" {
			if err := conn.WriteJSON(wsReply{Error: "Session ID is required."}); err != nil {
				return
			}
			continue
		}

		reply, err := s.engine.HandleTurn(c.Request.Context(), dialogue.Turn{
			SessionID:  req.SessionID,
			CustomerID: req.CustomerID,
			Utterance:  req.Prompt,
		})
		if err != nil {
			s.log.Error().Err(err).Str("session", req.SessionID).Msg("websocket turn failed")
			if err := conn.WriteJSON(wsReply{Error: retryMessage}); err != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(wsReply{Reply: reply}); err != nil {
			return
		}
	}
}
