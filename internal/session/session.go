// Package session tracks the players connected to a shared labyrinth server.
// Every connection owns its own game; the registry only holds metadata and
// a channel for server notices such as daily-challenge completions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ID uniquely identifies a connection (e.g., one SSH session).
type ID string

// NewID returns a fresh random session ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Short returns the first eight characters of the ID for logs and HUDs.
func (id ID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Info is the metadata the registry keeps about a connection.
type Info struct {
	ID         ID
	User       string
	RemoteAddr string
	GameID     string // game currently played, empty while in the menu
	Seed       int64
	StartedAt  time.Time
}

// Handle is the transport-neutral interface for talking to a session.
// It lets the server push notices without depending on Wish or Bubble Tea.
type Handle interface {
	// ID returns the unique session identifier.
	ID() ID

	// Send delivers an event asynchronously. Must not block.
	Send(evt Event)

	// Done returns a channel that closes when the session ends.
	Done() <-chan struct{}
}

// ChannelSession is a Handle backed by Go channels.
// The TUI layer reads Events() from its Bubble Tea program.
type ChannelSession struct {
	id       ID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a new channel-based session handle.
// eventBufferSize controls how many events can be buffered before dropping.
func NewChannelSession(id ID, eventBufferSize int) *ChannelSession {
	if eventBufferSize < 1 {
		eventBufferSize = 16
	}
	return &ChannelSession{
		id:     id,
		events: make(chan Event, eventBufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() ID {
	return s.id
}

// Send delivers an event. If the buffer is full the oldest event is dropped.
func (s *ChannelSession) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSession) Events() <-chan Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the session as done. Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
