package ui

import (
	"log"
	"sync"
	"time"

	"oncoviz/domain/core"
)

// sessionCookie names the browser cookie carrying the session ID.
const sessionCookie = "oncoviz_session"

type sessionState struct {
	dismissed bool
	touchedAt time.Time
}

// Sessions is the in-memory store for per-browser UI state. The only fact
// tracked today is whether the advisory overlay was dismissed. Dismissal
// lives until the next recompute clears it, so the overlay returns whenever
// a changed selection lands in a non-ready state.
type Sessions struct {
	mu        sync.RWMutex
	entries   map[core.SessionID]*sessionState
	ttl       time.Duration
	lastSweep time.Time
}

// NewSessions creates a session store whose entries expire after ttl of
// inactivity.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Sessions{
		entries:   make(map[core.SessionID]*sessionState),
		ttl:       ttl,
		lastSweep: time.Now(),
	}
}

// Touch marks the session as seen, creating it when new.
func (s *Sessions) Touch(id core.SessionID) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.entries[id]; ok {
		st.touchedAt = now
	} else {
		s.entries[id] = &sessionState{touchedAt: now}
	}
	s.sweepLocked(now)
}

// Dismissed reports whether the overlay was dismissed in this session.
func (s *Sessions) Dismissed(id core.SessionID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.entries[id]
	return ok && st.dismissed
}

// Dismiss records that the overlay close button was clicked.
func (s *Sessions) Dismiss(id core.SessionID) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.entries[id]
	if !ok {
		st = &sessionState{}
		s.entries[id] = st
	}
	st.dismissed = true
	st.touchedAt = now
}

// Reset clears the dismissal flag. Every recompute goes through here.
func (s *Sessions) Reset(id core.SessionID) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.entries[id]
	if !ok {
		s.entries[id] = &sessionState{touchedAt: now}
		return
	}
	st.dismissed = false
	st.touchedAt = now
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// sweepLocked drops entries idle past the TTL. Called with mu held, at most
// once per minute so request latency stays flat.
func (s *Sessions) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < time.Minute {
		return
	}
	s.lastSweep = now

	removed := 0
	for id, st := range s.entries {
		if now.Sub(st.touchedAt) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[Sessions] Swept %d expired sessions (%d live)", removed, len(s.entries))
	}
}
