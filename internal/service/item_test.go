package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirocosta/todo-api/internal/model"
	"github.com/cirocosta/todo-api/internal/repository"
)

func newTestService(now time.Time) (*ItemService, *repository.InMemoryItemRepository) {
	repo := repository.NewInMemoryItemRepository()
	svc := NewItemService(repo,
		WithClock(func() time.Time { return now }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return svc, repo
}

func TestWindowBounds(t *testing.T) {
	t.Parallel()

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	for name, tc := range map[string]struct {
		window    Window
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
		wantErr   error
	}{
		"today": {
			window:    Today,
			now:       time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC),
			wantStart: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC),
		},
		"tomorrow across a month boundary": {
			window:    Tomorrow,
			now:       time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC),
			wantStart: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		"week from a wednesday": {
			window:    ThisWeek,
			now:       time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC),
		},
		"week from a sunday starts that day": {
			window:    ThisWeek,
			now:       time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC),
		},
		"day boundaries follow the clock location": {
			window:    Today,
			now:       time.Date(2024, 5, 15, 23, 30, 0, 0, time.UTC).In(berlin),
			wantStart: time.Date(2024, 5, 16, 0, 0, 0, 0, berlin),
			wantEnd:   time.Date(2024, 5, 17, 0, 0, 0, 0, berlin),
		},
		"unknown": {
			window:  Window(0),
			now:     time.Now(),
			wantErr: ErrUnknownWindow,
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			start, end, err := tc.window.Bounds(tc.now)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.wantStart.Equal(start), "start: want %s, got %s", tc.wantStart, start)
			assert.True(t, tc.wantEnd.Equal(end), "end: want %s, got %s", tc.wantEnd, end)
		})
	}
}

func TestListIncoming(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	for _, item := range []model.TodoItem{
		{Name: "yesterday", Expiry: time.Date(2024, 5, 14, 23, 59, 59, 0, time.UTC)},
		{Name: "today start", Expiry: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)},
		{Name: "today end", Expiry: time.Date(2024, 5, 15, 23, 59, 59, 0, time.UTC)},
		{Name: "tomorrow", Expiry: time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)},
	} {
		_, err := repo.Create(ctx, item)
		require.NoError(t, err)
	}

	names := func(items []model.TodoItem) []string {
		var out []string
		for _, item := range items {
			out = append(out, item.Name)
		}
		return out
	}

	items, err := svc.ListIncoming(ctx, Today)
	require.NoError(t, err)
	assert.Equal(t, []string{"today start", "today end"}, names(items))

	items, err = svc.ListIncoming(ctx, Tomorrow)
	require.NoError(t, err)
	assert.Equal(t, []string{"tomorrow"}, names(items))

	items, err = svc.ListIncoming(ctx, ThisWeek)
	require.NoError(t, err)
	assert.Equal(t, []string{"yesterday", "today start", "today end", "tomorrow"}, names(items))

	_, err = svc.ListIncoming(ctx, Window(7))
	assert.ErrorIs(t, err, ErrUnknownWindow)
}

func TestListIncomingEmpty(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(time.Now())

	_, err := svc.ListIncoming(context.Background(), Today)
	assert.ErrorIs(t, err, ErrNoIncomingItems)
}

func TestCreateItemAssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	first, err := svc.CreateItem(ctx, model.TodoItemRequest{Name: "a"})
	require.NoError(t, err)
	second, err := svc.CreateItem(ctx, model.TodoItemRequest{Name: "b"})
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.IsComplete)

	got, err := svc.GetItem(ctx, second.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateItemReplacesMutableFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	created, err := svc.CreateItem(ctx, model.TodoItemRequest{
		Name:            "old",
		Description:     "old description",
		PercentComplete: 90,
		IsComplete:      true,
		Expiry:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	req := model.TodoItemRequest{
		Name:            "new",
		Expiry:          time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC),
		PercentComplete: 0,
		IsComplete:      false,
	}
	_, err = svc.UpdateItem(ctx, created.ID, req)
	require.NoError(t, err)

	got, err := svc.GetItem(ctx, created.ID)
	require.NoError(t, err)

	want := model.TodoItem{
		ID:     created.ID,
		Name:   "new",
		Expiry: time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdatePercentCompleteOnlyTouchesPercent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	created, err := svc.CreateItem(ctx, model.TodoItemRequest{Name: "keep", Description: "keep too"})
	require.NoError(t, err)

	_, err = svc.UpdatePercentComplete(ctx, created.ID, 33.3)
	require.NoError(t, err)

	got, err := svc.GetItem(ctx, created.ID)
	require.NoError(t, err)

	want := created
	want.PercentComplete = 33.3
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkDone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	for _, initial := range []bool{false, true} {
		created, err := svc.CreateItem(ctx, model.TodoItemRequest{Name: "x", IsComplete: initial})
		require.NoError(t, err)

		_, err = svc.MarkDone(ctx, created.ID)
		require.NoError(t, err)

		got, err := svc.GetItem(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.IsComplete)
	}
}

func TestMissingItem(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	var notFound repository.ErrItemNotFound
	for name, op := range map[string]func() error{
		"get": func() error {
			_, err := svc.GetItem(ctx, 42)
			return err
		},
		"update": func() error {
			_, err := svc.UpdateItem(ctx, 42, model.TodoItemRequest{Name: "x"})
			return err
		},
		"percent": func() error {
			_, err := svc.UpdatePercentComplete(ctx, 42, 1)
			return err
		},
		"done": func() error {
			_, err := svc.MarkDone(ctx, 42)
			return err
		},
		"delete": func() error {
			return svc.DeleteItem(ctx, 42)
		},
	} {
		err := op()
		if assert.True(t, errors.As(err, &notFound), name) {
			assert.Equal(t, int64(42), notFound.ID, name)
		}
	}
}

func TestDeleteThenGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	created, err := svc.CreateItem(ctx, model.TodoItemRequest{Name: "gone"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(ctx, created.ID))

	_, err = svc.GetItem(ctx, created.ID)
	assert.ErrorAs(t, err, &repository.ErrItemNotFound{})
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestService(time.Now())

	require.NoError(t, svc.Seed(ctx))
	require.NoError(t, svc.Seed(ctx))

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, SeedItemName, items[0].Name)
	assert.False(t, items[0].IsComplete)
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestService(time.Now())

	_, err := svc.CreateItem(ctx, model.TodoItemRequest{Name: "mine"})
	require.NoError(t, err)
	require.NoError(t, svc.Seed(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
