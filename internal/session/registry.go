package session

import (
	"sort"
	"sync"
)

type entry struct {
	handle Handle
	info   Info
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ID]*entry
}

// NewRegistry creates a new session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[ID]*entry),
	}
}

// Register adds a session to the registry. The Info ID is taken from the handle.
func (r *Registry) Register(h Handle, info Info) {
	info.ID = h.ID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[h.ID()] = &entry{handle: h, info: info}
}

// Unregister removes a session from the registry.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get retrieves a session by ID.
func (r *Registry) Get(id ID) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return Info{}, false
	}
	return e.info, true
}

// SetRun records which maze a session is playing. Empty gameID means the
// session went back to the menu. Unknown IDs are ignored.
func (r *Registry) SetRun(id ID, gameID string, seed int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[id]; ok {
		e.info.GameID = gameID
		e.info.Seed = seed
	}
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns the metadata of all sessions, oldest first.
func (r *Registry) Snapshot() []Info {
	r.mu.RLock()
	result := make([]Info, 0, len(r.sessions))
	for _, e := range r.sessions {
		result = append(result, e.info)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartedAt.Equal(result[j].StartedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartedAt.Before(result[j].StartedAt)
	})
	return result
}

// Broadcast sends evt to every session except evt.From. It returns the
// number of sessions notified.
func (r *Registry) Broadcast(evt Event) int {
	r.mu.RLock()
	handles := make([]Handle, 0, len(r.sessions))
	for id, e := range r.sessions {
		if id != evt.From {
			handles = append(handles, e.handle)
		}
	}
	r.mu.RUnlock()

	for _, h := range handles {
		h.Send(evt)
	}
	return len(handles)
}
