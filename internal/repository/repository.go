// package repository provides data access interfaces and implementations
package repository

import (
	"context"
	"time"

	"github.com/cirocosta/todo-api/internal/model"
)

// ItemRepository defines the interface for todo item data access
type ItemRepository interface {
	// FindAll returns all items ordered by id
	FindAll(ctx context.Context) ([]model.TodoItem, error)

	// FindByID returns a specific item by ID
	FindByID(ctx context.Context, id int64) (model.TodoItem, error)

	// FindExpiringBetween returns items whose expiry is in [start, end)
	FindExpiringBetween(ctx context.Context, start, end time.Time) ([]model.TodoItem, error)

	// Create stores a new item and returns it with its assigned id
	Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error)

	// Update overwrites the mutable fields of an existing item
	Update(ctx context.Context, id int64, item model.TodoItem) (model.TodoItem, error)

	// Delete removes an item
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored items
	Count(ctx context.Context) (int64, error)

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error
}
