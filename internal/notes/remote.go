package notes

import (
	"context"

	"github.com/scribbly/scribbly/internal/domain"
)

// Remote is the asynchronous CRUD + query surface of the remote note
// service. The Redis store implements it in production; tests use an
// in-memory fake. Every call may fail with a transport error; the
// store never retries, it reports.
type Remote interface {
	// CreateNote persists a draft and returns the confirmed record
	// with the server-assigned id and timestamps.
	CreateNote(ctx context.Context, draft *domain.Note) (*domain.Note, error)

	// UpdateNote merges partial fields into the stored record and
	// refreshes its UpdatedAt. Returns domain.ErrNotFound when the
	// note no longer exists.
	UpdateNote(ctx context.Context, id string, update domain.NoteUpdate) error

	// DeleteNote removes a note. Returns domain.ErrNotFound when it
	// does not exist.
	DeleteNote(ctx context.Context, id string) error

	// QueryNotes returns one owner's notes, ordered UpdatedAt descending.
	QueryNotes(ctx context.Context, ownerID string) ([]*domain.Note, error)

	// QueryAllNotes returns every note across owners, ordered
	// UpdatedAt descending.
	QueryAllNotes(ctx context.Context) ([]*domain.Note, error)

	// QueryCategories returns an owner's stored categories.
	QueryCategories(ctx context.Context, ownerID string) ([]*domain.Category, error)

	// CreateCategory persists a category.
	CreateCategory(ctx context.Context, category *domain.Category) error
}
