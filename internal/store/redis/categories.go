package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/scribbly/scribbly/internal/domain"
)

// CreateCategory persists a category. Categories are identity-only
// records: storing the same name twice for an owner is a no-op
// overwrite, which is what per-owner name uniqueness means here.
func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	data, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("failed to marshal category %s: %w", category.Name, err)
	}

	if err := s.client.Set(ctx, CategoryKey(category.OwnerID, category.Name), data, 0).Err(); err != nil {
		return remoteErr("failed to save category", err)
	}
	if err := s.client.SAdd(ctx, OwnerCategoriesKey(category.OwnerID), category.Name).Err(); err != nil {
		return remoteErr("failed to index category", err)
	}

	return nil
}

// QueryCategories returns an owner's stored categories, sorted by name
// for a deterministic order.
func (s *Store) QueryCategories(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	names, err := s.client.SMembers(ctx, OwnerCategoriesKey(ownerID)).Result()
	if err != nil {
		return nil, remoteErr("failed to list categories", err)
	}

	categories := make([]*domain.Category, 0, len(names))
	for _, name := range names {
		data, err := s.client.Get(ctx, CategoryKey(ownerID, name)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, remoteErr("failed to get category", err)
		}

		var category domain.Category
		if err := json.Unmarshal(data, &category); err != nil {
			return nil, fmt.Errorf("failed to unmarshal category %s: %w", name, err)
		}
		categories = append(categories, &category)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}
