package ws

import (
	"encoding/json"

	"hirelink_backend/internal/logger"

	"github.com/gorilla/websocket"
)

type Client struct {
	// ID is unique per connection. UserID is empty for anonymous
	// clients, which can watch broadcasts but never receive targeted
	// events.
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan any

	Manager *WebSocketManager

	// rooms the client joined, touched only under the manager's lock.
	rooms map[string]bool
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "client_id", c.ID, "error", err.Error())
			}
			break
		}

		var msg IncomingWSMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Debug("ws message parse failed", "client_id", c.ID, "error", err.Error())
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	for msg := range c.Send {
		if err := c.Conn.WriteJSON(msg); err != nil {
			logger.Debug("ws write error", "client_id", c.ID, "error", err.Error())
			break
		}
	}
	c.Conn.Close()
}

// handleMessage routes interview call signaling. The server relays
// frames between room members without looking inside the WebRTC
// payloads.
func (c *Client) handleMessage(msg IncomingWSMessage) {
	var payload SignalPayload
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			logger.Debug("ws invalid signal payload", "client_id", c.ID, "action", msg.Action)
			return
		}
	}
	if payload.Room == "" {
		logger.Debug("ws signal without room", "client_id", c.ID, "action", msg.Action)
		return
	}
	payload.From = c.UserID

	switch msg.Action {
	case ActionJoinRoom:
		c.Manager.JoinRoom(payload.Room, c)
		c.Manager.EmitToRoom(payload.Room, c, EventUserJoined, payload)

	case ActionCallUser:
		c.Manager.EmitToRoom(payload.Room, c, EventCallUser, payload)

	case ActionAnswerCall:
		c.Manager.EmitToRoom(payload.Room, c, EventCallAccepted, payload)

	case ActionEndCall:
		c.Manager.EmitToRoom(payload.Room, c, EventCallEnded, payload)

	default:
		logger.Debug("ws unhandled action", "client_id", c.ID, "action", msg.Action)
	}
}
