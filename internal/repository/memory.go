package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cirocosta/todo-api/internal/model"
)

// InMemoryItemRepository implements ItemRepository with an in-memory map.
// Ids start at 1 and are never reused.
type InMemoryItemRepository struct {
	items  map[int64]model.TodoItem
	nextID int64
	mutex  sync.RWMutex
}

// NewInMemoryItemRepository creates an empty in-memory item repository
func NewInMemoryItemRepository() *InMemoryItemRepository {
	return &InMemoryItemRepository{
		items:  make(map[int64]model.TodoItem),
		nextID: 1,
	}
}

// FindAll returns all items ordered by id
func (r *InMemoryItemRepository) FindAll(ctx context.Context) ([]model.TodoItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	items := make([]model.TodoItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sortByID(items)

	return items, nil
}

// FindByID returns a specific item by ID
func (r *InMemoryItemRepository) FindByID(ctx context.Context, id int64) (model.TodoItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return model.TodoItem{}, ErrItemNotFound{ID: id}
	}

	return item, nil
}

// FindExpiringBetween returns items whose expiry is in [start, end)
func (r *InMemoryItemRepository) FindExpiringBetween(ctx context.Context, start, end time.Time) ([]model.TodoItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	items := []model.TodoItem{}
	for _, item := range r.items {
		if !item.Expiry.Before(start) && item.Expiry.Before(end) {
			items = append(items, item)
		}
	}
	sortByID(items)

	return items, nil
}

// Create adds a new item, ignoring any id already set on it
func (r *InMemoryItemRepository) Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	item.ID = r.nextID
	item.Expiry = item.Expiry.UTC()
	r.nextID++
	r.items[item.ID] = item

	return item, nil
}

// Update modifies an existing item
func (r *InMemoryItemRepository) Update(ctx context.Context, id int64, item model.TodoItem) (model.TodoItem, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.items[id]; !exists {
		return model.TodoItem{}, ErrItemNotFound{ID: id}
	}

	// ensure ID doesn't change
	item.ID = id
	item.Expiry = item.Expiry.UTC()
	r.items[id] = item

	return item, nil
}

// Delete removes an item
func (r *InMemoryItemRepository) Delete(ctx context.Context, id int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.items[id]; !exists {
		return ErrItemNotFound{ID: id}
	}

	delete(r.items, id)
	return nil
}

// Count returns the number of stored items
func (r *InMemoryItemRepository) Count(ctx context.Context) (int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return int64(len(r.items)), nil
}

// Ping always succeeds for the in-memory store
func (r *InMemoryItemRepository) Ping(ctx context.Context) error {
	return nil
}

func sortByID(items []model.TodoItem) {
	slices.SortFunc(items, func(a, b model.TodoItem) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
}
