package seed

import (
	"context"
	"fmt"

	"github.com/scribbly/scribbly/internal/logger"
	"github.com/scribbly/scribbly/internal/notes"
)

// Importer pushes a seed file into the remote note service. Import is
// idempotent per title: notes the owner already has are not recreated,
// so restarts with the same file don't duplicate data.
type Importer struct {
	remote notes.Remote
	logger logger.Logger
}

// NewImporter creates a new seed importer
func NewImporter(remote notes.Remote, log logger.Logger) *Importer {
	return &Importer{
		remote: remote,
		logger: log,
	}
}

// Import loads the seed file and creates the missing categories and
// notes for ownerID.
func (i *Importer) Import(ctx context.Context, filePath, ownerID string) error {
	file, err := NewLoader(filePath).Load()
	if err != nil {
		return err
	}

	mapper := NewMapper()

	drafts, err := mapper.MapNotes(file, ownerID)
	if err != nil {
		return err
	}

	existing, err := i.remote.QueryNotes(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to query existing notes: %w", err)
	}
	haveTitle := make(map[string]bool, len(existing))
	for _, n := range existing {
		haveTitle[n.Title] = true
	}

	storedCategories, err := i.remote.QueryCategories(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to query existing categories: %w", err)
	}
	haveCategory := make(map[string]bool, len(storedCategories))
	for _, c := range storedCategories {
		haveCategory[c.Name] = true
	}

	createdCategories := 0
	for _, category := range mapper.MapCategories(file, ownerID) {
		if haveCategory[category.Name] {
			continue
		}
		if err := i.remote.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.Name, err)
		}
		createdCategories++
	}

	createdNotes := 0
	for _, draft := range drafts {
		if haveTitle[draft.Title] {
			i.logger.Debug("skipping already seeded note",
				logger.String("title", draft.Title))
			continue
		}
		if _, err := i.remote.CreateNote(ctx, draft); err != nil {
			return fmt.Errorf("failed to seed note %s: %w", draft.Title, err)
		}
		createdNotes++
	}

	i.logger.Info("seed import complete",
		logger.String("owner_id", ownerID),
		logger.Int("notes_created", createdNotes),
		logger.Int("categories_created", createdCategories),
		logger.Int("notes_skipped", len(drafts)-createdNotes))
	return nil
}
