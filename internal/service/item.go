// package service implements business logic for the application
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cirocosta/todo-api/internal/model"
	"github.com/cirocosta/todo-api/internal/repository"
)

// SeedItemName is the name of the item inserted into an empty store at startup
const SeedItemName = "Item1"

var (
	// ErrUnknownWindow is returned for an incoming-window selector other
	// than Today, Tomorrow or ThisWeek
	ErrUnknownWindow = errors.New("unknown incoming window")

	// ErrNoIncomingItems is returned when no item expires in the window
	ErrNoIncomingItems = errors.New("no incoming items")
)

// Window selects the date range used by ListIncoming
type Window int64

const (
	Today    Window = 1
	Tomorrow Window = 2
	ThisWeek Window = 3
)

// String implements fmt.Stringer
func (w Window) String() string {
	switch w {
	case Today:
		return "today"
	case Tomorrow:
		return "tomorrow"
	case ThisWeek:
		return "this week"
	default:
		return fmt.Sprintf("window(%d)", int64(w))
	}
}

// Bounds returns the half-open range [start, end) the window covers for the
// given instant, computed in now's location. Weeks start on Sunday.
func (w Window) Bounds(now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch w {
	case Today:
		return today, today.AddDate(0, 0, 1), nil
	case Tomorrow:
		return today.AddDate(0, 0, 1), today.AddDate(0, 0, 2), nil
	case ThisWeek:
		start := today.AddDate(0, 0, -int(today.Weekday()))
		return start, start.AddDate(0, 0, 7), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d", ErrUnknownWindow, int64(w))
	}
}

// ItemService handles business logic for todo item operations
type ItemService struct {
	repo   repository.ItemRepository
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an ItemService
type Option func(*ItemService)

// WithClock replaces time.Now; the returned time's location decides where
// day boundaries fall for incoming windows.
func WithClock(now func() time.Time) Option {
	return func(s *ItemService) {
		s.now = now
	}
}

// WithLogger sets the logger used for seeding messages
func WithLogger(logger *slog.Logger) Option {
	return func(s *ItemService) {
		s.logger = logger
	}
}

// NewItemService creates a new item service with the given repository
func NewItemService(repo repository.ItemRepository, opts ...Option) *ItemService {
	s := &ItemService{
		repo:   repo,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ListItems returns all items
func (s *ItemService) ListItems(ctx context.Context) ([]model.TodoItem, error) {
	return s.repo.FindAll(ctx)
}

// GetItem returns an item by ID
func (s *ItemService) GetItem(ctx context.Context, id int64) (model.TodoItem, error) {
	return s.repo.FindByID(ctx, id)
}

// ListIncoming returns every item expiring in the selected window
func (s *ItemService) ListIncoming(ctx context.Context, window Window) ([]model.TodoItem, error) {
	start, end, err := window.Bounds(s.now())
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindExpiringBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoIncomingItems, window)
	}

	return items, nil
}

// CreateItem stores a new item built from the request
func (s *ItemService) CreateItem(ctx context.Context, req model.TodoItemRequest) (model.TodoItem, error) {
	item := model.TodoItem{
		Expiry:          req.Expiry,
		Description:     req.Description,
		PercentComplete: req.PercentComplete,
		Name:            req.Name,
		IsComplete:      req.IsComplete,
	}

	return s.repo.Create(ctx, item)
}

// UpdateItem overwrites every mutable field of an existing item
func (s *ItemService) UpdateItem(ctx context.Context, id int64, req model.TodoItemRequest) (model.TodoItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.TodoItem{}, err
	}

	item.Name = req.Name
	item.Expiry = req.Expiry
	item.Description = req.Description
	item.PercentComplete = req.PercentComplete
	item.IsComplete = req.IsComplete

	return s.repo.Update(ctx, id, item)
}

// UpdatePercentComplete overwrites only the percent complete of an item
func (s *ItemService) UpdatePercentComplete(ctx context.Context, id int64, percent float64) (model.TodoItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.TodoItem{}, err
	}

	item.PercentComplete = percent

	return s.repo.Update(ctx, id, item)
}

// MarkDone flags an item as complete
func (s *ItemService) MarkDone(ctx context.Context, id int64) (model.TodoItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.TodoItem{}, err
	}

	item.IsComplete = true

	return s.repo.Update(ctx, id, item)
}

// DeleteItem deletes an item
func (s *ItemService) DeleteItem(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Ping reports whether the store is reachable
func (s *ItemService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// Seed inserts the default item when the store is empty. Running it again
// on a non-empty store does nothing.
func (s *ItemService) Seed(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		s.logger.Debug("store not empty, skipping seed", "items", count)
		return nil
	}

	item, err := s.repo.Create(ctx, model.TodoItem{Name: SeedItemName})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	s.logger.Info("seeded empty store", "id", item.ID, "name", item.Name)
	return nil
}
