package domain

// NoteUpdate is a partial set of note fields. Nil pointers mean
// "leave unchanged", so a remote confirmation or a cache mutation can
// be merged keyed by field instead of overwriting whole records. That
// field-wise merge is what keeps a slow-resolving early write from
// clobbering a later one.
type NoteUpdate struct {
	Title    *string
	Category *string
	Tags     []string
	Content  *string
	Favorite *bool
}

// IsEmpty reports whether the update carries no fields at all.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Category == nil && u.Tags == nil &&
		u.Content == nil && u.Favorite == nil
}

// Apply merges the set fields into n. UpdatedAt is the caller's
// concern: the remote store stamps its own clock, the cache stamps a
// local one while the write is pending.
func (u NoteUpdate) Apply(n *Note) {
	if u.Title != nil {
		n.Title = *u.Title
	}
	if u.Category != nil {
		n.Category = *u.Category
	}
	if u.Tags != nil {
		n.Tags = append([]string(nil), u.Tags...)
	}
	if u.Content != nil {
		n.Content = *u.Content
	}
	if u.Favorite != nil {
		n.Favorite = *u.Favorite
	}
}
