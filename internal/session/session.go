// Package session tracks the live terminal sessions of the SSH front end.
// Each session plays its own match; the manager only lists them, keeps a
// scoreboard of connected players and broadcasts server shutdown.
package session

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// EventType identifies an event sent to a session.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is delivered on a handle's Events channel.
type Event struct {
	Type EventType
}

// Handle is a session's registration.
type Handle struct {
	ID       int
	Username string
	Events   chan Event // Closed on Unregister
}

// TopScoreEntry is one line of the connected-players scoreboard.
type TopScoreEntry struct {
	Username string
	Score    int
	id       int // Tie-break so equal scores keep a stable order
}

type entry struct {
	handle *Handle
	best   int
}

// Manager registers sessions. Safe for concurrent use.
type Manager struct {
	mu           sync.RWMutex
	sessions     map[int]*entry
	nextID       int
	shuttingDown bool
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int]*entry),
		nextID:   1,
	}
}

// Register adds a session. A session registered during shutdown is told at once.
func (m *Manager) Register(username string) *Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := &Handle{
		ID:       m.nextID,
		Username: username,
		Events:   make(chan Event, 16),
	}
	m.nextID++
	m.sessions[h.ID] = &entry{handle: h}
	if m.shuttingDown {
		h.Events <- Event{Type: EventServerShutdown}
	}
	return h
}

// Unregister removes a session and closes its event channel.
func (m *Manager) Unregister(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[id]; ok {
		close(e.handle.Events)
		delete(m.sessions, id)
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ReportScore records a finished match score; only the session's best counts.
func (m *Manager) ReportScore(id, score int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.sessions[id]; ok {
		e.best = max(e.best, score)
	}
}

// TopScores returns up to n connected players with a score, best first.
func (m *Manager) TopScores(n int) []TopScoreEntry {
	m.mu.RLock()
	out := make([]TopScoreEntry, 0, len(m.sessions))
	for id, e := range m.sessions {
		if e.best > 0 {
			out = append(out, TopScoreEntry{Username: e.handle.Username, Score: e.best, id: id})
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b TopScoreEntry) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.id, b.id)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Shutdown notifies every session and waits until all have unregistered or
// timeout passes.
func (m *Manager) Shutdown(timeout time.Duration) {
	m.mu.Lock()
	m.shuttingDown = true
	for _, e := range m.sessions {
		select {
		case e.handle.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	m.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for m.Count() > 0 {
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
