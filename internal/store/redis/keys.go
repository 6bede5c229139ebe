package redis

// Key layout: note records are JSON blobs, membership sets allow
// scoped and global queries without scanning.
const (
	// KeyPrefixNote is the prefix for note record keys.
	KeyPrefixNote = "scribbly:note:"
	// KeyPrefixOwnerNotes is the prefix for per-owner note id sets.
	KeyPrefixOwnerNotes = "scribbly:notes:owner:"
	// KeyAllNotes is the set of all note ids, across owners.
	KeyAllNotes = "scribbly:notes:all"

	// KeyPrefixCategory is the prefix for category record keys.
	KeyPrefixCategory = "scribbly:category:"
	// KeyPrefixOwnerCategories is the prefix for per-owner category name sets.
	KeyPrefixOwnerCategories = "scribbly:categories:owner:"
)

// NoteKey returns the Redis key for a note by id.
func NoteKey(id string) string {
	return KeyPrefixNote + id
}

// OwnerNotesKey returns the key for an owner's note id set.
func OwnerNotesKey(ownerID string) string {
	return KeyPrefixOwnerNotes + ownerID
}

// AllNotesKey returns the key for the global note id set.
func AllNotesKey() string {
	return KeyAllNotes
}

// CategoryKey returns the Redis key for a category record.
// Category names are unique per owner, so the owner scopes the key.
func CategoryKey(ownerID, name string) string {
	return KeyPrefixCategory + ownerID + ":" + name
}

// OwnerCategoriesKey returns the key for an owner's category name set.
func OwnerCategoriesKey(ownerID string) string {
	return KeyPrefixOwnerCategories + ownerID
}
