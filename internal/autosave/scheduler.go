package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/scribbly/scribbly/internal/logger"
)

// DefaultDelay is the quiet period after the last edit before a save fires.
const DefaultDelay = 1000 * time.Millisecond

// saveTimeout bounds a single background save attempt.
const saveTimeout = 10 * time.Second

// SaveFunc persists the latest content of a note. Failures are logged
// by the scheduler and never surfaced: autosave must not interrupt typing.
type SaveFunc func(ctx context.Context, noteID, content string) error

// Scheduler debounces content saves per note: every edit restarts that
// note's timer, so only an edit followed by a full quiet period
// triggers a save. Notes that do not exist yet have no id and therefore
// never reach the scheduler; new notes are persisted only by an
// explicit save.
type Scheduler struct {
	mu      sync.Mutex
	entries map[string]*entry
	delay   time.Duration
	save    SaveFunc
	logger  logger.Logger
	stopped bool
}

type entry struct {
	timer *time.Timer
	gen   uint64
}

// New creates a scheduler. A non-positive delay falls back to DefaultDelay.
func New(delay time.Duration, save SaveFunc, log logger.Logger) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{
		entries: make(map[string]*entry),
		delay:   delay,
		save:    save,
		logger:  log,
	}
}

// Schedule registers an edit: any pending timer for the note is
// cancelled and the delay restarts with the new content.
func (s *Scheduler) Schedule(noteID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	e := s.entries[noteID]
	if e == nil {
		e = &entry{}
		s.entries[noteID] = e
	} else {
		e.timer.Stop()
	}
	e.gen++

	gen := e.gen
	e.timer = time.AfterFunc(s.delay, func() {
		s.fire(noteID, content, gen)
	})
}

// Cancel drops any pending save for the note. Called on delete so a
// pending timer cannot resurrect a removed note.
func (s *Scheduler) Cancel(noteID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[noteID]; ok {
		e.timer.Stop()
		delete(s.entries, noteID)
	}
}

// CancelAll drops every pending save. Called when the identity changes
// and the cache is replaced wholesale.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		e.timer.Stop()
		delete(s.entries, id)
	}
}

// Stop cancels all pending saves and refuses new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, e := range s.entries {
		e.timer.Stop()
		delete(s.entries, id)
	}
}

func (s *Scheduler) fire(noteID, content string, gen uint64) {
	s.mu.Lock()
	e, ok := s.entries[noteID]
	if !ok || e.gen != gen {
		// Superseded by a newer edit or cancelled while this callback
		// was already in flight.
		s.mu.Unlock()
		return
	}
	delete(s.entries, noteID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.save(ctx, noteID, content); err != nil {
		s.logger.Warn("autosave failed",
			logger.String("note_id", noteID),
			logger.Error(err))
	}
}
