package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/scribbly/scribbly/internal/domain"
	"github.com/scribbly/scribbly/internal/logger"
)

// LoadCategories fetches the owner's categories and rebuilds the local
// list. An owner with no stored categories gets the fixed default set;
// otherwise "Default" is always first, deduplicating a stored one. On
// fetch failure the list falls back to the default set and the error
// is still reported — categories degrade independently of notes.
//
// If no category filter is active yet, the first category becomes the
// active filter. First population only; an explicit user choice is
// never overridden.
func (s *Store) LoadCategories(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	s.catEpoch++
	epoch := s.catEpoch
	s.mu.Unlock()

	stored, err := s.remote.QueryCategories(ctx, ownerID)
	if err != nil {
		s.applyCategories(epoch, domain.DefaultCategorySet())
		return fmt.Errorf("failed to load categories: %w", err)
	}

	var names []string
	if len(stored) == 0 {
		names = domain.DefaultCategorySet()
	} else {
		names = []string{domain.DefaultCategory}
		for _, c := range stored {
			if c.Name != domain.DefaultCategory {
				names = append(names, c.Name)
			}
		}
	}

	if !s.applyCategories(epoch, names) {
		s.logger.Debug("discarding stale categories load",
			logger.String("owner_id", ownerID))
		return nil
	}

	s.logger.Info("categories loaded",
		logger.String("owner_id", ownerID),
		logger.Int("count", len(names)))
	return nil
}

func (s *Store) applyCategories(epoch uint64, names []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.catEpoch {
		return false
	}

	s.categories = names
	if s.activeCat == "" && len(names) > 0 {
		s.activeCat = names[0]
	}
	return true
}

// AddCategory creates a category remotely and appends it locally.
// Empty or whitespace-only input is a silent no-op, a deliberate UX
// choice rather than an error. No reconciliation is needed: a category
// has no server-derived fields worth re-reading.
func (s *Store) AddCategory(ctx context.Context, name string) error {
	ident := s.signal.Current()
	if ident == nil {
		return domain.ErrUnauthenticated
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		s.logger.Debug("ignoring empty category name")
		return nil
	}

	if err := s.remote.CreateCategory(ctx, &domain.Category{
		Name:    trimmed,
		OwnerID: ident.ID,
	}); err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing == trimmed {
			return nil
		}
	}
	s.categories = append(s.categories, trimmed)
	return nil
}

// Categories returns a copy of the current category list.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.categories...)
}
