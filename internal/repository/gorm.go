package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cirocosta/todo-api/internal/model"
)

// mutableColumns are written by Update. Listing them explicitly makes GORM
// write zero values too.
var mutableColumns = []string{"Name", "Expiry", "Description", "PercentComplete", "IsComplete"}

// GormItemRepository implements ItemRepository on top of a GORM connection
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a repository using the given connection.
// The schema is expected to be migrated already.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindAll returns all items ordered by id
func (r *GormItemRepository) FindAll(ctx context.Context) ([]model.TodoItem, error) {
	items := []model.TodoItem{}
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("find all items: %w", err)
	}

	return items, nil
}

// FindByID returns a specific item by ID
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (model.TodoItem, error) {
	var item model.TodoItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.TodoItem{}, ErrItemNotFound{ID: id}
	}
	if err != nil {
		return model.TodoItem{}, fmt.Errorf("find item %d: %w", id, err)
	}

	return item, nil
}

// FindExpiringBetween returns items whose expiry is in [start, end)
func (r *GormItemRepository) FindExpiringBetween(ctx context.Context, start, end time.Time) ([]model.TodoItem, error) {
	items := []model.TodoItem{}
	err := r.db.WithContext(ctx).
		Where("expiry >= ? AND expiry < ?", start.UTC(), end.UTC()).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("find items expiring between %s and %s: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), err)
	}

	return items, nil
}

// Create inserts a new item; the database assigns its id
func (r *GormItemRepository) Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	item.ID = 0
	item.Expiry = item.Expiry.UTC()

	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.TodoItem{}, fmt.Errorf("create item: %w", err)
	}

	return item, nil
}

// Update overwrites the mutable columns of an existing item
func (r *GormItemRepository) Update(ctx context.Context, id int64, item model.TodoItem) (model.TodoItem, error) {
	item.ID = id
	item.Expiry = item.Expiry.UTC()

	result := r.db.WithContext(ctx).
		Model(&model.TodoItem{ID: id}).
		Select(mutableColumns).
		Updates(&item)
	if result.Error != nil {
		return model.TodoItem{}, fmt.Errorf("update item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return model.TodoItem{}, ErrItemNotFound{ID: id}
	}

	return item, nil
}

// Delete removes an item
func (r *GormItemRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.TodoItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound{ID: id}
	}

	return nil
}

// Count returns the number of stored items
func (r *GormItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TodoItem{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}

	return count, nil
}

// Ping verifies the database connection is alive
func (r *GormItemRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	return sqlDB.PingContext(ctx)
}
