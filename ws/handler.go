package ws

import (
	"net/http"
	"strings"

	"hirelink_backend/internal/auth"
	"hirelink_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	Manager *WebSocketManager
}

func NewWebSocketHandler(manager *WebSocketManager) *WebSocketHandler {
	return &WebSocketHandler{Manager: manager}
}

// ServeWS upgrades the connection. The handshake is deliberately
// permissive: a missing or invalid token downgrades the client to
// anonymous instead of rejecting it, so public pages can still watch
// broadcast events. Targeted delivery requires a valid token.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := resolveUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	client := &Client{
		ID:      uuid.NewString(),
		UserID:  userID,
		Conn:    conn,
		Send:    make(chan any, 256),
		Manager: h.Manager,
		rooms:   make(map[string]bool),
	}

	logger.Debug("websocket client connected", "client_id", client.ID, "user_id", userID)

	h.Manager.register <- client

	go client.readPump()
	go client.writePump()
}

// resolveUserID extracts the caller's identity from the token query
// parameter or the Authorization header. Returns "" for anonymous.
func resolveUserID(c *gin.Context) string {
	token := c.Query("token")
	if token == "" {
		header := c.GetHeader("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		return ""
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		logger.Debug("websocket token rejected, continuing as anonymous", "error", err.Error())
		return ""
	}
	return claims.UserID
}
