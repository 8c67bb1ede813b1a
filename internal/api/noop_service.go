package api

import (
	"context"

	"github.com/cirocosta/todo-api/internal/model"
	"github.com/cirocosta/todo-api/internal/service"
)

// NoopItemService does nothing and is used solely to build the router for
// OpenAPI document generation without a store
type NoopItemService struct{}

// NewNoopItemService creates a new no-op item service
func NewNoopItemService() *NoopItemService {
	return &NoopItemService{}
}

// ListItems implements ItemService
func (s *NoopItemService) ListItems(ctx context.Context) ([]model.TodoItem, error) {
	return nil, nil
}

// GetItem implements ItemService
func (s *NoopItemService) GetItem(ctx context.Context, id int64) (model.TodoItem, error) {
	return model.TodoItem{}, nil
}

// ListIncoming implements ItemService
func (s *NoopItemService) ListIncoming(ctx context.Context, window service.Window) ([]model.TodoItem, error) {
	return nil, nil
}

// CreateItem implements ItemService
func (s *NoopItemService) CreateItem(ctx context.Context, req model.TodoItemRequest) (model.TodoItem, error) {
	return model.TodoItem{}, nil
}

// UpdateItem implements ItemService
func (s *NoopItemService) UpdateItem(ctx context.Context, id int64, req model.TodoItemRequest) (model.TodoItem, error) {
	return model.TodoItem{}, nil
}

// UpdatePercentComplete implements ItemService
func (s *NoopItemService) UpdatePercentComplete(ctx context.Context, id int64, percent float64) (model.TodoItem, error) {
	return model.TodoItem{}, nil
}

// MarkDone implements ItemService
func (s *NoopItemService) MarkDone(ctx context.Context, id int64) (model.TodoItem, error) {
	return model.TodoItem{}, nil
}

// DeleteItem implements ItemService
func (s *NoopItemService) DeleteItem(ctx context.Context, id int64) error {
	return nil
}

// Ping implements ItemService
func (s *NoopItemService) Ping(ctx context.Context) error {
	return nil
}
