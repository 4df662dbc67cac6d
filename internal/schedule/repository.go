package schedule

import (
	"context"
	"time"
)

// Repository defines persistent storage for scheduling items. Computed
// captions and opaque payloads are runtime-only and are not round-tripped.
type Repository interface {
	// SaveItem persists a new item.
	SaveItem(ctx context.Context, item *Item) error

	// ListItems returns all persisted items ordered by day and start time.
	ListItems(ctx context.Context) ([]*Item, error)

	// ListItemsByDateRange returns items whose day falls within [start, end].
	ListItemsByDateRange(ctx context.Context, start, end time.Time) ([]*Item, error)

	// DeleteItem removes an item by ID.
	DeleteItem(ctx context.Context, id string) error

	// DeleteAll removes every persisted item.
	DeleteAll(ctx context.Context) error

	// Close releases any resources held by the repository.
	Close() error
}
