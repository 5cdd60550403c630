package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"parolaccia/internal/assistant"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

const socketReadLimit = 64 * 1024

// handleChatSocket runs the chat for one session over a websocket. The
// protocol mirrors the turn-based core: one JSON request in, one turn
// result out, strictly in order.
func (s *Server) handleChatSocket(c *gin.Context) {
	sess, err := s.sessions.Get(c.Query("session"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(socketReadLimit)

	lang := assistant.DetectLanguage(c.Query("locale"), "")
	greeting := assistant.TurnResult{AssistantMessage: assistant.Greeting(lang)}
	if err := conn.WriteJSON(greeting); err != nil {
		return
	}

	for {
		var req ChatRequest
		conn.SetReadDeadline(time.Now().Add(10 * time.Minute))
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", zap.String("session", sess.ID), zap.Error(err))
			}
			return
		}
		if req.Message == "" {
			continue
		}

		sess.Lock()
		result := s.runTurn(sess, req.Message, req.Locale)
		sess.Unlock()

		if err := conn.WriteJSON(result); err != nil {
			s.log.Warn("websocket write failed", zap.String("session", sess.ID), zap.Error(err))
			return
		}
	}
}
