package services

// Realtime event names pushed through the Emitter.
const (
	EventNotification          = "notification"
	EventNewInterviewRequest   = "new_interview_request"
	EventInterviewStatusUpdate = "interview_status_update"
)

// Emitter pushes events to connected realtime clients. It is injected
// into services instead of being reached through a process-wide socket
// singleton so translators stay testable. Both methods are
// fire-and-forget: no delivery acknowledgement, no error.
type Emitter interface {
	// EmitToUser delivers an event to every live connection of one
	// authenticated user. Connections without a resolved user identity
	// never receive targeted events.
	EmitToUser(userID, event string, payload any)

	// Broadcast delivers an event to every live connection.
	Broadcast(event string, payload any)
}

// NopEmitter discards all events. Used when the realtime layer is
// disabled and in tests.
type NopEmitter struct{}

func (NopEmitter) EmitToUser(userID, event string, payload any) {}
func (NopEmitter) Broadcast(event string, payload any)          {}
