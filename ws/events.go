package ws

import "encoding/json"

// Event names pushed to clients.
const (
	EventUserJoined   = "user-joined"
	EventCallUser     = "call-user"
	EventCallAccepted = "call-accepted"
	EventCallEnded    = "call-ended"
)

// Actions clients may send.
const (
	ActionJoinRoom   = "join-room"
	ActionCallUser   = "call-user"
	ActionAnswerCall = "answer-call"
	ActionEndCall    = "end-call"
)

// Envelope is the wire format for every outbound frame.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// IncomingWSMessage is the wire format for every inbound frame.
type IncomingWSMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// SignalPayload carries WebRTC session descriptions and ICE data
// between interview participants. The server never inspects Signal.
type SignalPayload struct {
	Room   string          `json:"room"`
	From   string          `json:"from,omitempty"`
	Signal json.RawMessage `json:"signal,omitempty"`
}
