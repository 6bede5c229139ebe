package seed

import (
	"fmt"
	"strings"

	"github.com/scribbly/scribbly/internal/domain"
)

// Mapper converts seed entries into domain drafts
type Mapper struct{}

// NewMapper creates a new seed mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapNotes converts the seed file's note entries into note drafts for
// the given owner. Entries without a title are skipped; a draft with
// no category falls back to the default one.
func (m *Mapper) MapNotes(file *File, ownerID string) ([]*domain.Note, error) {
	notes := make([]*domain.Note, 0, len(file.Notes))

	for _, entry := range file.Notes {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}

		category := strings.TrimSpace(entry.Category)
		if category == "" {
			category = domain.DefaultCategory
		}

		var tags []string
		if entry.Tags != "" {
			tags = domain.SplitTags(entry.Tags)
		}

		notes = append(notes, &domain.Note{
			OwnerID:  ownerID,
			Title:    title,
			Category: category,
			Tags:     tags,
			Content:  entry.Content,
			Favorite: entry.Favorite,
		})
	}

	if len(notes) == 0 {
		return nil, fmt.Errorf("no valid notes found in seed file")
	}

	return notes, nil
}

// MapCategories returns the seed file's category names for the owner,
// trimmed and deduplicated.
func (m *Mapper) MapCategories(file *File, ownerID string) []*domain.Category {
	seen := make(map[string]bool)
	categories := make([]*domain.Category, 0, len(file.Categories))

	for _, raw := range file.Categories {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		categories = append(categories, &domain.Category{
			Name:    name,
			OwnerID: ownerID,
		})
	}

	return categories
}
