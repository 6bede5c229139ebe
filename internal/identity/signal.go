package identity

import (
	"sync"

	"github.com/scribbly/scribbly/internal/domain"
)

// Change is one observed identity transition. Identity is nil when the
// session became anonymous.
type Change struct {
	Identity   *domain.Identity
	Privileged bool
}

// Signal exposes the current identity and privilege flag, and fans out
// changes to subscribers. The notes store binds to it: every change
// triggers a full reload, and privileged operations consult the flag
// here rather than trusting callers.
type Signal struct {
	mu         sync.RWMutex
	current    *domain.Identity
	privileged bool
	watchers   []chan Change
}

func NewSignal() *Signal {
	return &Signal{}
}

// Current returns the active identity, or nil when anonymous.
func (s *Signal) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	id := *s.current
	return &id
}

// Privileged reports whether the active identity may query notes
// across all owners.
func (s *Signal) Privileged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current != nil && s.privileged
}

// Set replaces the current identity and notifies subscribers.
// A privilege flip with the same id is still a change.
func (s *Signal) Set(id string, privileged bool) {
	s.mu.Lock()
	s.current = &domain.Identity{ID: id}
	s.privileged = privileged
	change := Change{Identity: &domain.Identity{ID: id}, Privileged: privileged}
	watchers := append([]chan Change(nil), s.watchers...)
	s.mu.Unlock()

	notify(watchers, change)
}

// Clear makes the session anonymous and notifies subscribers.
func (s *Signal) Clear() {
	s.mu.Lock()
	s.current = nil
	s.privileged = false
	watchers := append([]chan Change(nil), s.watchers...)
	s.mu.Unlock()

	notify(watchers, Change{})
}

// Subscribe returns a channel receiving every subsequent change. The
// channel is buffered; a subscriber that falls behind gets the newest
// pending change dropped, never a blocked Set.
func (s *Signal) Subscribe() <-chan Change {
	ch := make(chan Change, 1)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	return ch
}

func notify(watchers []chan Change, change Change) {
	for _, ch := range watchers {
		// Replace a stale pending change instead of blocking.
		select {
		case ch <- change:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- change:
			default:
			}
		}
	}
}
