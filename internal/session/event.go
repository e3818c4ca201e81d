package session

import "time"

// EventType identifies the kind of notice sent to a session.
type EventType int

const (
	EventNotice        EventType = iota // free-form server message
	EventRunCompleted                   // another player finished a maze
	EventServerClosing                  // the server is shutting down
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventNotice:
		return "Notice"
	case EventRunCompleted:
		return "RunCompleted"
	case EventServerClosing:
		return "ServerClosing"
	default:
		return "Unknown"
	}
}

// Event is a notice delivered to a session.
type Event struct {
	Type    EventType
	Message string
	From    ID // originating session, empty for server notices
	At      time.Time
}

// NewEvent creates an event stamped with the current time.
func NewEvent(t EventType, msg string) Event {
	return Event{Type: t, Message: msg, At: time.Now()}
}
