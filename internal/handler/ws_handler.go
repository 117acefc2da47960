package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"rawkart/internal/chat"
	"rawkart/internal/middleware"
	"rawkart/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement is the CORS layer's job; the socket itself only
	// trusts the bearer token
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler websocket entry point for chat sessions
type WSHandler struct {
	coordinator *chat.Coordinator
	sendBuffer  int
}

// NewWSHandler creates a websocket handler
func NewWSHandler(coordinator *chat.Coordinator, sendBuffer int) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		sendBuffer:  sendBuffer,
	}
}

// Serve upgrades the connection and starts a chat session. Runs behind the
// auth middleware; identity comes from the validated token.
func (h *WSHandler) Serve(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	userName, _ := middleware.GetUserName(c)
	role, _ := middleware.GetUserRole(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithFields(map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Websocket upgrade failed")
		return
	}

	session := chat.NewWSSession(conn, h.coordinator, userID, userName, chat.Role(role), h.sendBuffer)
	session.Run()

	log.WithFields(map[string]interface{}{
		"session_id": session.ID(),
		"user_id":    userID,
		"role":       role,
	}).Info("Chat session connected")
}
