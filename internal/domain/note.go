package domain

import (
	"strings"
	"time"
)

// Note represents the canonical runtime truth of a single note.
//
// It is NOT tied to Redis or any transport representation.
// The remote store and the in-memory cache both traffic in this structure.
//
// A Note is uniquely identified by its ID, which is assigned by the
// remote store on creation and never generated client-side.
type Note struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, assigned by the remote store.
	ID string `json:"id"`

	// OwnerID is the identity that created the note. Immutable.
	OwnerID string `json:"owner_id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title is the display title of the note.
	Title string `json:"title"`

	// Category references a Category by name. Not enforced as a
	// foreign key; a note may name a category that no longer exists.
	Category string `json:"category"`

	// Tags is an ordered list of tag tokens. Raw comma-separated input
	// is split with SplitTags, which preserves empty entries.
	Tags []string `json:"tags"`

	// Content is an opaque text blob. Its internal structure (Markdown
	// or otherwise) belongs to the presentation layer; nothing in this
	// module interprets it.
	Content string `json:"content"`

	// Favorite marks the note as starred.
	Favorite bool `json:"favorite"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is stamped by the remote store on creation.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed by the remote store on every update, and
	// stamped locally while a mutation is pending confirmation.
	UpdatedAt time.Time `json:"updated_at"`

	// Versions is reserved for future edit history. It is initialized
	// empty on creation and never read or written beyond that.
	Versions []Version `json:"versions"`
}

// Version is a reserved slot for future note history entries.
type Version struct {
	Content   string    `json:"content"`
	SavedAt   time.Time `json:"saved_at"`
	AuthorID  string    `json:"author_id"`
	Retention string    `json:"retention,omitempty"`
}

// Clone returns a deep copy of the note.
// Cache reads hand out clones so callers can never mutate cached state.
func (n *Note) Clone() *Note {
	c := *n
	if n.Tags != nil {
		c.Tags = append([]string(nil), n.Tags...)
	}
	if n.Versions != nil {
		c.Versions = append([]Version(nil), n.Versions...)
	}
	return &c
}

// SplitTags splits raw comma-separated tag input and trims each token.
// Empty tokens are preserved: "a, ,b" yields ["a", "", "b"].
// Consumers that want clean tags must filter themselves.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, len(parts))
	for i, p := range parts {
		tags[i] = strings.TrimSpace(p)
	}
	return tags
}
