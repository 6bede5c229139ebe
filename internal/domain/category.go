package domain

// DefaultCategory is the sentinel category that conceptually always
// exists, even when the owner never stored it remotely.
const DefaultCategory = "Default"

// DefaultCategorySet is the first-run category list, used when an owner
// has no stored categories or when loading categories fails.
func DefaultCategorySet() []string {
	return []string{DefaultCategory, "Linux", "SQL", "DevOps"}
}

// Category represents a stored note category.
//
// A Category carries no server-derived fields worth reconciling: its
// name IS its identity, unique within an owner's scope.
type Category struct {
	// Name is the unique (per owner) category name.
	Name string `json:"name"`

	// OwnerID is the identity that created the category.
	OwnerID string `json:"owner_id"`
}
