package interfaces

import (
	"context"

	"microreg/catalog/domain"
)

// ItemStore persists catalog items.
type ItemStore interface {
	// List returns all items, newest first. An empty catalog is an empty slice.
	List(ctx context.Context) ([]domain.Item, error)
	// Get returns entity_not_found when id is unknown.
	Get(ctx context.Context, id string) (domain.Item, error)
	// Create stores a new item.
	Create(ctx context.Context, item domain.Item) error
	// Update replaces an existing item; entity_not_found when item.ID is unknown.
	Update(ctx context.Context, item domain.Item) error
	// Delete removes an item; entity_not_found when id is unknown.
	Delete(ctx context.Context, id string) error
}
