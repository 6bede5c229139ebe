package domain

// Identity is the current authenticated user as reported by the
// identity signal. A nil *Identity means anonymous.
type Identity struct {
	// ID is the owner id used to scope notes and categories.
	ID string
}
