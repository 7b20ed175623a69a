package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hirelink_backend/internal/auth"
	"hirelink_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

type wsTestServer struct {
	manager *WebSocketManager
	server  *httptest.Server
	cancel  context.CancelFunc
}

func newWSTestServer(t *testing.T) *wsTestServer {
	t.Helper()

	manager := NewWebSocketManager()
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Run(ctx)

	router := gin.New()
	handler := NewWebSocketHandler(manager)
	router.GET("/ws", handler.ServeWS)

	server := httptest.NewServer(router)
	ts := &wsTestServer{manager: manager, server: server, cancel: cancel}
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return ts
}

func (ts *wsTestServer) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.server.URL, "http") + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (ts *wsTestServer) waitForClients(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for ts.manager.GetClientCount() < want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", want, ts.manager.GetClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (ts *wsTestServer) waitForRoom(t *testing.T, room string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		ts.manager.mu.RLock()
		size := len(ts.manager.rooms[room])
		ts.manager.mu.RUnlock()
		if size >= want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected %d members in room %s, have %d", want, room, size)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func mustToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, "candidate")
	require.NoError(t, err)
	return token
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func assertNoFrame(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var env Envelope
	err := conn.ReadJSON(&env)
	assert.Error(t, err, "expected no frame, got %+v", env)
}

func sendAction(t *testing.T, conn *websocket.Conn, action string, payload SignalPayload) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(IncomingWSMessage{Action: action, Data: data}))
}

func TestTargetedDeliveryReachesOnlyTheUser(t *testing.T) {
	ts := newWSTestServer(t)

	alice := ts.dial(t, mustToken(t, "user-alice"))
	bob := ts.dial(t, mustToken(t, "user-bob"))
	ts.waitForClients(t, 2)

	ts.manager.EmitToUser("user-alice", "interview_status_update", map[string]string{"id": "iv-1"})

	env := readEnvelope(t, alice)
	assert.Equal(t, "interview_status_update", env.Event)

	assertNoFrame(t, bob)
}

func TestAnonymousClientGetsBroadcastsButNoTargetedEvents(t *testing.T) {
	ts := newWSTestServer(t)

	// Garbage token downgrades to anonymous instead of rejecting.
	anon := ts.dial(t, "not-a-jwt")
	named := ts.dial(t, mustToken(t, "user-alice"))
	ts.waitForClients(t, 2)

	assert.True(t, ts.manager.IsUserConnected("user-alice"))

	ts.manager.Broadcast("notification", map[string]string{"title": "hi"})
	env := readEnvelope(t, anon)
	assert.Equal(t, "notification", env.Event)
	readEnvelope(t, named)

	// Targeted events skip anonymous connections entirely.
	ts.manager.EmitToUser("user-alice", "interview_status_update", nil)
	readEnvelope(t, named)
	assertNoFrame(t, anon)
}

func TestMultipleConnectionsPerUserAllReceive(t *testing.T) {
	ts := newWSTestServer(t)

	token := mustToken(t, "user-alice")
	first := ts.dial(t, token)
	second := ts.dial(t, token)
	ts.waitForClients(t, 2)

	ts.manager.EmitToUser("user-alice", "notification", nil)

	assert.Equal(t, "notification", readEnvelope(t, first).Event)
	assert.Equal(t, "notification", readEnvelope(t, second).Event)
}

func TestInterviewRoomCallSignaling(t *testing.T) {
	ts := newWSTestServer(t)

	caller := ts.dial(t, mustToken(t, "user-rec"))
	callee := ts.dial(t, mustToken(t, "user-cand"))
	ts.waitForClients(t, 2)

	sendAction(t, caller, ActionJoinRoom, SignalPayload{Room: "iv-1"})
	ts.waitForRoom(t, "iv-1", 1)
	sendAction(t, callee, ActionJoinRoom, SignalPayload{Room: "iv-1"})
	ts.waitForRoom(t, "iv-1", 2)

	// The first joiner hears about the second.
	joined := readEnvelope(t, caller)
	assert.Equal(t, EventUserJoined, joined.Event)

	offer := json.RawMessage(`{"sdp":"offer"}`)
	sendAction(t, caller, ActionCallUser, SignalPayload{Room: "iv-1", Signal: offer})
	env := readEnvelope(t, callee)
	assert.Equal(t, EventCallUser, env.Event)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var relayed SignalPayload
	require.NoError(t, json.Unmarshal(data, &relayed))
	assert.Equal(t, "user-rec", relayed.From)
	assert.JSONEq(t, string(offer), string(relayed.Signal))

	sendAction(t, callee, ActionAnswerCall, SignalPayload{Room: "iv-1", Signal: json.RawMessage(`{"sdp":"answer"}`)})
	assert.Equal(t, EventCallAccepted, readEnvelope(t, caller).Event)

	sendAction(t, callee, ActionEndCall, SignalPayload{Room: "iv-1"})
	assert.Equal(t, EventCallEnded, readEnvelope(t, caller).Event)
}

func TestSenderIsExcludedFromRoomRelay(t *testing.T) {
	ts := newWSTestServer(t)

	solo := ts.dial(t, mustToken(t, "user-solo"))
	ts.waitForClients(t, 1)

	sendAction(t, solo, ActionJoinRoom, SignalPayload{Room: "iv-9"})
	ts.waitForRoom(t, "iv-9", 1)
	sendAction(t, solo, ActionCallUser, SignalPayload{Room: "iv-9", Signal: json.RawMessage(`{}`)})

	assertNoFrame(t, solo)
}

func TestDisconnectCleansUpUserIndex(t *testing.T) {
	ts := newWSTestServer(t)

	conn := ts.dial(t, mustToken(t, "user-alice"))
	ts.waitForClients(t, 1)
	require.True(t, ts.manager.IsUserConnected("user-alice"))

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for ts.manager.IsUserConnected("user-alice") {
		if time.Now().After(deadline) {
			t.Fatal("user still indexed after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 0, ts.manager.GetClientCount())
}
