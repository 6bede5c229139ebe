package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/scribbly/scribbly/internal/domain"
	"github.com/scribbly/scribbly/internal/identity"
	"github.com/scribbly/scribbly/internal/logger"
	"github.com/scribbly/scribbly/internal/notes"
)

// memoryRemote is a minimal in-memory note service for end-to-end
// store scenarios.
type memoryRemote struct {
	mu         sync.Mutex
	notes      map[string]*domain.Note
	categories map[string][]*domain.Category
	seq        int
	clock      time.Time
	offline    bool
}

func newMemoryRemote() *memoryRemote {
	return &memoryRemote{
		notes:      make(map[string]*domain.Note),
		categories: make(map[string][]*domain.Category),
		clock:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRemote) CreateNote(_ context.Context, draft *domain.Note) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return nil, domain.ErrRemoteUnavailable
	}
	note := draft.Clone()
	m.seq++
	note.ID = fmt.Sprintf("n%d", m.seq)
	m.clock = m.clock.Add(time.Second)
	note.CreatedAt = m.clock
	note.UpdatedAt = m.clock
	note.Versions = []domain.Version{}
	m.notes[note.ID] = note.Clone()
	return note, nil
}

func (m *memoryRemote) UpdateNote(_ context.Context, id string, update domain.NoteUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return domain.ErrRemoteUnavailable
	}
	note, ok := m.notes[id]
	if !ok {
		return domain.ErrNotFound
	}
	update.Apply(note)
	m.clock = m.clock.Add(time.Second)
	note.UpdatedAt = m.clock
	return nil
}

func (m *memoryRemote) DeleteNote(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return domain.ErrRemoteUnavailable
	}
	if _, ok := m.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *memoryRemote) QueryNotes(_ context.Context, ownerID string) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return nil, domain.ErrRemoteUnavailable
	}
	var out []*domain.Note
	for _, n := range m.notes {
		if n.OwnerID == ownerID {
			out = append(out, n.Clone())
		}
	}
	sortByUpdatedAtDesc(out)
	return out, nil
}

func (m *memoryRemote) QueryAllNotes(_ context.Context) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return nil, domain.ErrRemoteUnavailable
	}
	var out []*domain.Note
	for _, n := range m.notes {
		out = append(out, n.Clone())
	}
	sortByUpdatedAtDesc(out)
	return out, nil
}

func sortByUpdatedAtDesc(list []*domain.Note) {
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if list[j].UpdatedAt.After(list[i].UpdatedAt) {
				list[i], list[j] = list[j], list[i]
			}
		}
	}
}

func (m *memoryRemote) QueryCategories(_ context.Context, ownerID string) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return nil, domain.ErrRemoteUnavailable
	}
	return append([]*domain.Category(nil), m.categories[ownerID]...), nil
}

func (m *memoryRemote) CreateCategory(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offline {
		return domain.ErrRemoteUnavailable
	}
	m.categories[category.OwnerID] = append(m.categories[category.OwnerID],
		&domain.Category{Name: category.Name, OwnerID: category.OwnerID})
	return nil
}

func newStore(remote notes.Remote) (*notes.Store, *identity.Signal) {
	sig := identity.NewSignal()
	store := notes.NewStore(remote, sig, logger.New("error", false), 20*time.Millisecond)
	return store, sig
}

// TestFirstRunScenario drives a fresh user end to end: sign in with an
// empty store, get the default categories, create a first note with
// comma-separated tags, and see it appear at the top of the list.
func TestFirstRunScenario(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	store, sig := newStore(remote)
	defer store.Stop()

	sig.Set("alice", false)
	if err := store.Reload(ctx, "alice"); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}

	if store.Count() != 0 {
		t.Fatalf("fresh user has %d cached notes, want 0", store.Count())
	}
	cats := store.Categories()
	if len(cats) != 4 || cats[0] != "Default" {
		t.Fatalf("fresh user categories = %v, want the default set", cats)
	}
	if store.ActiveCategory() != "Default" {
		t.Errorf("active category = %q, want auto-selected Default", store.ActiveCategory())
	}

	created, err := store.AddNote(ctx, notes.Draft{
		Title:   "First note",
		Tags:    "todo, personal",
		Content: "# hello",
	})
	if err != nil {
		t.Fatalf("AddNote() error: %v", err)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "todo" || created.Tags[1] != "personal" {
		t.Errorf("Tags = %v, want [todo personal]", created.Tags)
	}
	if created.Category != "Default" {
		t.Errorf("Category = %q, want the first category as fallback", created.Category)
	}

	visible := store.VisibleNotes()
	if len(visible) != 1 || visible[0].ID != created.ID {
		t.Fatalf("visible = %+v, want the new note on top", visible)
	}

	// The note survives a sign-out/sign-in cycle via the remote store.
	sig.Clear()
	store.Clear()
	if store.Count() != 0 {
		t.Fatal("cache not dropped on sign-out")
	}
	sig.Set("alice", false)
	if err := store.Reload(ctx, "alice"); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if store.Count() != 1 {
		t.Fatalf("reloaded %d notes, want the persisted one", store.Count())
	}
}

// TestFavoriteToggleScenario checks the optimistic update path: the
// toggle is visible in the cache immediately and sticks after the
// remote write resolves.
func TestFavoriteToggleScenario(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	store, sig := newStore(remote)
	defer store.Stop()

	sig.Set("alice", false)
	if err := store.Reload(ctx, "alice"); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	created, err := store.AddNote(ctx, notes.Draft{Title: "toggle me"})
	if err != nil {
		t.Fatalf("AddNote() error: %v", err)
	}

	fav := true
	if err := store.UpdateNote(ctx, created.ID, domain.NoteUpdate{Favorite: &fav}); err != nil {
		t.Fatalf("UpdateNote() error: %v", err)
	}
	cached, _ := store.Note(created.ID)
	if !cached.Favorite {
		t.Error("favorite flag not set in cache")
	}
	if store.Unsaved(created.ID) {
		t.Error("successful toggle left the note flagged unsaved")
	}

	// Toggle while the remote is down: value stays, flag goes up.
	remote.mu.Lock()
	remote.offline = true
	remote.mu.Unlock()

	off := false
	if err := store.UpdateNote(ctx, created.ID, domain.NoteUpdate{Favorite: &off}); err == nil {
		t.Fatal("UpdateNote() should report the remote failure")
	}
	cached, _ = store.Note(created.ID)
	if cached.Favorite {
		t.Error("optimistic value was rolled back")
	}
	if !store.Unsaved(created.ID) {
		t.Error("failed write did not flag the note unsaved")
	}
}

// TestSearchAcrossCategoriesScenario checks that a non-empty query
// searches the whole cache even while a category filter is active, and
// that clearing the query restores the filter.
func TestSearchAcrossCategoriesScenario(t *testing.T) {
	ctx := context.Background()
	remote := newMemoryRemote()
	store, sig := newStore(remote)
	defer store.Stop()

	sig.Set("alice", false)
	if err := store.Reload(ctx, "alice"); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}

	if _, err := store.AddNote(ctx, notes.Draft{Title: "pg tuning", Category: "SQL", Tags: "postgres"}); err != nil {
		t.Fatalf("AddNote() error: %v", err)
	}
	if _, err := store.AddNote(ctx, notes.Draft{Title: "systemd units", Category: "Linux", Content: "postgres.service"}); err != nil {
		t.Fatalf("AddNote() error: %v", err)
	}

	store.SetActiveCategory("Linux")
	store.SetSearchQuery("postgres")

	visible := store.VisibleNotes()
	if len(visible) != 2 {
		t.Fatalf("search found %d notes, want 2 across categories", len(visible))
	}

	store.SetSearchQuery("")
	visible = store.VisibleNotes()
	if len(visible) != 1 || visible[0].Category != "Linux" {
		t.Fatalf("filter found %v, want only the Linux note", visible)
	}
}

// TestIdentitySwitchScenario checks that switching identities through
// the signal swaps the cache contents via the bound watcher.
func TestIdentitySwitchScenario(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remote := newMemoryRemote()
	if _, err := remote.CreateNote(ctx, &domain.Note{OwnerID: "alice", Title: "alice note"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := remote.CreateNote(ctx, &domain.Note{OwnerID: "bob", Title: "bob note"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store, sig := newStore(remote)
	defer store.Stop()
	store.Bind(ctx)

	sig.Set("alice", false)
	waitFor(t, func() bool {
		list := store.Notes()
		return len(list) == 1 && list[0].Title == "alice note"
	}, "alice's notes to load")

	sig.Set("bob", false)
	waitFor(t, func() bool {
		list := store.Notes()
		return len(list) == 1 && list[0].Title == "bob note"
	}, "bob's notes to replace alice's")

	sig.Clear()
	waitFor(t, func() bool { return store.Count() == 0 }, "cache to clear on sign-out")
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
