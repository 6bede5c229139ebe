package notes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/scribbly/scribbly/internal/autosave"
	"github.com/scribbly/scribbly/internal/domain"
	"github.com/scribbly/scribbly/internal/identity"
	"github.com/scribbly/scribbly/internal/logger"
)

// Scope selects whose notes a load fetches.
type Scope string

const (
	// ScopeOwn loads only the given owner's notes.
	ScopeOwn Scope = "own"
	// ScopeAll loads notes across all owners. Requires a privileged
	// identity; the store checks the signal, never a caller flag.
	ScopeAll Scope = "all"
)

// Store is the in-memory cache of notes and categories for the active
// identity, and the only writer to it. It mediates all CRUD between
// the presentation layer and the remote note service: creates are
// confirmed-then-cached, updates are optimistic, deletes are
// remote-first. It also owns selection state and the autosave
// scheduler.
//
// All reads hand out clones; cached records are never shared with
// callers.
type Store struct {
	remote Remote
	signal *identity.Signal
	logger logger.Logger
	saver  *autosave.Scheduler

	mu         sync.RWMutex
	notes      map[string]*domain.Note
	order      []string // cache order: UpdatedAt-desc from load, creates prepended
	unsaved    map[string]bool
	inflight   map[string]int
	categories []string
	selectedID string
	activeCat  string
	query      string

	// Load epochs: every load (and every wholesale clear) bumps the
	// counter, and a response is applied only if its epoch is still
	// current. Guards against a slow response for a previous identity
	// overwriting a newer one.
	epoch    uint64
	catEpoch uint64
}

// NewStore creates a store bound to the remote service and identity
// signal. autosaveDelay <= 0 uses the default debounce delay.
func NewStore(remote Remote, signal *identity.Signal, log logger.Logger, autosaveDelay time.Duration) *Store {
	s := &Store{
		remote:   remote,
		signal:   signal,
		logger:   log,
		notes:    make(map[string]*domain.Note),
		unsaved:  make(map[string]bool),
		inflight: make(map[string]int),
	}
	s.saver = autosave.New(autosaveDelay, s.saveContent, log)
	return s
}

// Bind watches the identity signal until ctx is cancelled: every
// change triggers a full reload, and an anonymous identity clears the
// cache.
func (s *Store) Bind(ctx context.Context) {
	changes := s.signal.Subscribe()
	go func() {
		for {
			select {
			case change := <-changes:
				if change.Identity == nil {
					s.logger.Info("identity cleared, dropping cached notes")
					s.Clear()
					continue
				}
				s.logger.Info("identity changed, reloading",
					logger.String("owner_id", change.Identity.ID),
					logger.Bool("privileged", change.Privileged))
				if err := s.Reload(ctx, change.Identity.ID); err != nil {
					s.logger.Error("reload after identity change failed",
						logger.Error(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Reload fetches notes and categories for the owner. The two loads are
// independent operations with independent failure handling, not a
// transaction: either may fail without blocking the other.
func (s *Store) Reload(ctx context.Context, ownerID string) error {
	notesErr := s.Load(ctx, ownerID, ScopeOwn)
	catErr := s.LoadCategories(ctx, ownerID)
	return errors.Join(notesErr, catErr)
}

// Load replaces the entire note cache with a fresh fetch. On failure
// the cache is reset to empty: stale or partial data is never shown as
// authoritative. A response that arrives after a newer load (or a
// clear) started is discarded.
func (s *Store) Load(ctx context.Context, ownerID string, scope Scope) error {
	if scope == ScopeAll && !s.signal.Privileged() {
		return domain.ErrForbidden
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	var (
		fetched []*domain.Note
		err     error
	)
	switch scope {
	case ScopeAll:
		fetched, err = s.remote.QueryAllNotes(ctx)
	default:
		fetched, err = s.remote.QueryNotes(ctx, ownerID)
	}

	if err != nil {
		s.applyLoad(epoch, nil)
		return fmt.Errorf("failed to load notes: %w", err)
	}

	if !s.applyLoad(epoch, fetched) {
		s.logger.Debug("discarding stale notes load",
			logger.String("owner_id", ownerID))
		return nil
	}

	s.logger.Info("notes loaded",
		logger.String("owner_id", ownerID),
		logger.String("scope", string(scope)),
		logger.Int("count", len(fetched)))
	return nil
}

// applyLoad installs a load result if its epoch is still current.
func (s *Store) applyLoad(epoch uint64, fetched []*domain.Note) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return false
	}

	s.notes = make(map[string]*domain.Note, len(fetched))
	s.order = make([]string, 0, len(fetched))
	for _, n := range fetched {
		if _, dup := s.notes[n.ID]; dup {
			continue
		}
		s.notes[n.ID] = n.Clone()
		s.order = append(s.order, n.ID)
	}
	s.unsaved = make(map[string]bool)

	// Weak selection: a reload that dropped the selected note clears it.
	if s.selectedID != "" {
		if _, ok := s.notes[s.selectedID]; !ok {
			s.selectedID = ""
		}
	}
	return true
}

// Clear empties the cache, categories and selection state, and cancels
// pending autosaves. Used when the identity becomes anonymous.
func (s *Store) Clear() {
	s.saver.CancelAll()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.catEpoch++
	s.notes = make(map[string]*domain.Note)
	s.order = nil
	s.unsaved = make(map[string]bool)
	s.inflight = make(map[string]int)
	s.categories = nil
	s.selectedID = ""
	s.activeCat = ""
	s.query = ""
}

// Draft is the input to AddNote. Tags is the raw comma-separated text
// exactly as typed; it is split and trimmed here.
type Draft struct {
	Title    string
	Category string
	Tags     string
	Content  string
	Favorite bool
}

// AddNote creates a note remotely and inserts the confirmed record
// into the cache once the create resolves. Creation is deliberately
// not optimistic: the id comes from the remote store, so there is
// nothing coherent to cache before the call returns. On failure the
// cache is untouched.
func (s *Store) AddNote(ctx context.Context, draft Draft) (*domain.Note, error) {
	ident := s.signal.Current()
	if ident == nil {
		return nil, domain.ErrUnauthenticated
	}

	category := draft.Category
	if category == "" {
		category = s.firstCategory()
	}

	created, err := s.remote.CreateNote(ctx, &domain.Note{
		Title:    draft.Title,
		Category: category,
		Tags:     domain.SplitTags(draft.Tags),
		Content:  draft.Content,
		Favorite: draft.Favorite,
		OwnerID:  ident.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}

	s.mu.Lock()
	s.notes[created.ID] = created.Clone()
	s.order = append([]string{created.ID}, s.order...)
	s.mu.Unlock()

	return created.Clone(), nil
}

// UpdateNote merges partial fields into the cached note immediately
// and issues the remote update afterwards. The optimistic value is
// the source of truth for reads from that moment on: remote
// confirmations carry no payload, so a slow early write can never
// clobber a later one.
//
// Failure policy: the optimistic value stays and the note is flagged
// unsaved (see Unsaved); the error is returned for the caller to
// surface. The one swallowed case is a NotFound for a note that has
// already left the cache, which is the delete/autosave race resolving
// itself.
func (s *Store) UpdateNote(ctx context.Context, id string, update domain.NoteUpdate) error {
	if s.signal.Current() == nil {
		return domain.ErrUnauthenticated
	}

	s.mu.Lock()
	note, ok := s.notes[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	update.Apply(note)
	note.UpdatedAt = time.Now() // local stamp until the remote confirms
	s.inflight[id]++
	s.mu.Unlock()

	err := s.remote.UpdateNote(ctx, id, update)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[id]--
	if s.inflight[id] <= 0 {
		delete(s.inflight, id)
	}

	if err == nil {
		if s.inflight[id] == 0 {
			delete(s.unsaved, id)
		}
		return nil
	}

	if errors.Is(err, domain.ErrNotFound) {
		if _, cached := s.notes[id]; !cached {
			// Deleted while this update was in flight. Benign.
			return nil
		}
	}

	s.unsaved[id] = true
	return fmt.Errorf("failed to update note %s: %w", id, err)
}

// DeleteNote removes a note remote-first: the cache entry survives
// until the remote delete resolves, so a note that might still exist
// remotely is never hidden locally. On success any pending autosave
// for the note is cancelled and a matching selection is cleared.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	if s.signal.Current() == nil {
		return domain.ErrUnauthenticated
	}

	if err := s.remote.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}

	s.saver.Cancel(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, id)
	delete(s.unsaved, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
	return nil
}

// EditContent registers a local content edit for an existing note and
// (re)starts its debounced autosave. The cache itself is only touched
// when the save fires; until then the edit lives in the editor.
func (s *Store) EditContent(id, content string) error {
	s.mu.RLock()
	_, ok := s.notes[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	s.saver.Schedule(id, content)
	return nil
}

// saveContent is the autosave sink. A note that vanished before the
// timer fired is a no-op, anything else goes through the normal
// optimistic update path.
func (s *Store) saveContent(ctx context.Context, id, content string) error {
	s.mu.RLock()
	_, ok := s.notes[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	return s.UpdateNote(ctx, id, domain.NoteUpdate{Content: &content})
}

// Note returns a clone of the cached note.
func (s *Store) Note(id string) (*domain.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, false
	}
	return note.Clone(), true
}

// ContentForExport returns the note's content verbatim for handoff to
// a download or print routine. Pure cache projection, no remote call.
func (s *Store) ContentForExport(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return "", fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	return note.Content, nil
}

// Unsaved reports whether the note carries an optimistic value whose
// remote write failed.
func (s *Store) Unsaved(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.unsaved[id]
}

// VisibleNotes applies the search/filter engine to the cache using the
// session's query and category, in cache order.
func (s *Store) VisibleNotes() []*domain.Note {
	s.mu.RLock()
	snapshot := make([]*domain.Note, 0, len(s.order))
	for _, id := range s.order {
		if n, ok := s.notes[id]; ok {
			snapshot = append(snapshot, n)
		}
	}
	query, category := s.query, s.activeCat
	s.mu.RUnlock()

	visible := domain.Visible(snapshot, query, category)
	out := make([]*domain.Note, len(visible))
	for i, n := range visible {
		out[i] = n.Clone()
	}
	return out
}

// Notes returns every cached note in cache order, unfiltered.
func (s *Store) Notes() []*domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Note, 0, len(s.order))
	for _, id := range s.order {
		if n, ok := s.notes[id]; ok {
			out = append(out, n.Clone())
		}
	}
	return out
}

// Count returns the number of cached notes.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.notes)
}

// Stop cancels all pending autosaves. Called on shutdown.
func (s *Store) Stop() {
	s.saver.Stop()
}

// ─────────────────────────────────────────────────────────────────
// Selection state
// ─────────────────────────────────────────────────────────────────

// SelectNote sets the active note by id; an empty id clears the
// selection. Selecting an id that is not cached is an error.
func (s *Store) SelectNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.selectedID = ""
		return nil
	}
	if _, ok := s.notes[id]; !ok {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	s.selectedID = id
	return nil
}

// SelectedNote resolves the selection against the cache. The selection
// is a weak reference: a deleted note simply stops resolving.
func (s *Store) SelectedNote() (*domain.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == "" {
		return nil, false
	}
	note, ok := s.notes[s.selectedID]
	if !ok {
		return nil, false
	}
	return note.Clone(), true
}

// SetSearchQuery sets the free-text search query. Empty disables search.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
}

// SearchQuery returns the current search query.
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.query
}

// SetActiveCategory sets the category filter. Empty disables it.
func (s *Store) SetActiveCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeCat = name
}

// ActiveCategory returns the current category filter.
func (s *Store) ActiveCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.activeCat
}

func (s *Store) firstCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.categories) == 0 {
		return ""
	}
	return s.categories[0]
}
