package database

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirocosta/todo-api/internal/config"
	"github.com/cirocosta/todo-api/internal/model"
)

func TestPostgresDSN(t *testing.T) {
	cfg := config.Default().Database
	cfg.Password = "secret"

	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=todo port=5432 sslmode=disable TimeZone=UTC",
		PostgresDSN(cfg))

	cfg.DSN = "postgres://u:p@db:5432/x"
	assert.Equal(t, "postgres://u:p@db:5432/x", PostgresDSN(cfg))
}

func TestOpenSQLiteMigrates(t *testing.T) {
	cfg := config.Default().Database
	cfg.Driver = config.DriverSQLite
	cfg.DSN = filepath.Join(t.TempDir(), "todo.db")

	db, err := Open(cfg, true, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	assert.True(t, db.Migrator().HasTable(&model.TodoItem{}))
	assert.True(t, db.Migrator().HasColumn(&model.TodoItem{}, "percent_complete"))
	assert.True(t, db.Migrator().HasColumn(&model.TodoItem{}, "is_complete"))

	item := model.TodoItem{Name: "Item1"}
	require.NoError(t, db.Create(&item).Error)
	assert.NotZero(t, item.ID)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	cfg := config.Default().Database
	cfg.Driver = config.DriverMemory

	_, err := Open(cfg, false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "unsupported database driver")
}
