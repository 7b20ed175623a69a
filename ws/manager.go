package ws

import (
	"context"
	"sync"

	"hirelink_backend/internal/logger"
)

// WebSocketManager owns every live connection. A user may hold several
// connections at once (two tabs, phone plus laptop), so users maps a
// user ID to a set of clients rather than a single one. Anonymous
// clients live only in the clients map and receive broadcasts.
type WebSocketManager struct {
	clients    map[*Client]bool
	users      map[string]map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*Client]bool),
		users:      make(map[string]map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (manager *WebSocketManager) Run(ctx context.Context) {
	for {
		select {
		case client := <-manager.register:
			manager.addClient(client)

		case client := <-manager.unregister:
			manager.removeClient(client)

		case <-ctx.Done():
			manager.closeAll()
			return
		}
	}
}

func (manager *WebSocketManager) addClient(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.clients[client] = true
	if client.UserID != "" {
		set, ok := manager.users[client.UserID]
		if !ok {
			set = make(map[*Client]bool)
			manager.users[client.UserID] = set
		}
		set[client] = true
	}

	logger.Debug("ws client registered",
		"client_id", client.ID, "user_id", client.UserID, "total", len(manager.clients))
}

func (manager *WebSocketManager) removeClient(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if _, ok := manager.clients[client]; !ok {
		return
	}
	close(client.Send)
	delete(manager.clients, client)

	if client.UserID != "" {
		if set, ok := manager.users[client.UserID]; ok {
			delete(set, client)
			if len(set) == 0 {
				delete(manager.users, client.UserID)
			}
		}
	}
	for room := range client.rooms {
		if set, ok := manager.rooms[room]; ok {
			delete(set, client)
			if len(set) == 0 {
				delete(manager.rooms, room)
			}
		}
	}

	logger.Debug("ws client unregistered",
		"client_id", client.ID, "user_id", client.UserID, "total", len(manager.clients))
}

func (manager *WebSocketManager) closeAll() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	for client := range manager.clients {
		close(client.Send)
		client.Conn.Close()
	}
	manager.clients = make(map[*Client]bool)
	manager.users = make(map[string]map[*Client]bool)
	manager.rooms = make(map[string]map[*Client]bool)
}

// JoinRoom adds the client to an interview room.
func (manager *WebSocketManager) JoinRoom(room string, client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	set, ok := manager.rooms[room]
	if !ok {
		set = make(map[*Client]bool)
		manager.rooms[room] = set
	}
	set[client] = true
	client.rooms[room] = true
}

// EmitToUser delivers an event to every connection the user holds.
// Unknown or offline users are a no-op.
func (manager *WebSocketManager) EmitToUser(userID, event string, payload any) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for client := range manager.users[userID] {
		manager.push(client, Envelope{Event: event, Data: payload})
	}
}

// EmitToRoom delivers an event to every room member except the sender.
// Pass nil to include everyone.
func (manager *WebSocketManager) EmitToRoom(room string, sender *Client, event string, payload any) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for client := range manager.rooms[room] {
		if client == sender {
			continue
		}
		manager.push(client, Envelope{Event: event, Data: payload})
	}
}

// Broadcast delivers an event to every connected client, anonymous
// ones included.
func (manager *WebSocketManager) Broadcast(event string, payload any) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for client := range manager.clients {
		manager.push(client, Envelope{Event: event, Data: payload})
	}
}

// push hands the frame to the client's writer. A full send channel
// means the reader stopped draining; the client gets kicked instead of
// blocking the whole manager.
func (manager *WebSocketManager) push(client *Client, envelope Envelope) {
	select {
	case client.Send <- envelope:
	default:
		logger.Warn("ws client send buffer full, disconnecting", "client_id", client.ID)
		go func() {
			manager.unregister <- client
		}()
	}
}

func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

func (manager *WebSocketManager) IsUserConnected(userID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.users[userID]) > 0
}
