package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cirocosta/todo-api/internal/config"
	"github.com/cirocosta/todo-api/internal/database"
	"github.com/cirocosta/todo-api/internal/repository"
)

// startPostgres runs a disposable postgres container and returns the
// connection settings pointing at it
func startPostgres(t *testing.T) config.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping container-based test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "todo",
				"POSTGRES_PASSWORD": "todo",
				"POSTGRES_DB":       "todo",
			},
			// postgres restarts once after initdb
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.Default().Database
	cfg.Host = host
	cfg.Port = port.Int()
	cfg.User = "todo"
	cfg.Password = "todo"
	cfg.Name = "todo"

	return cfg
}

func TestGormItemRepositoryPostgres(t *testing.T) {
	cfg := startPostgres(t)

	db, err := gorm.Open(postgres.Open(database.PostgresDSN(cfg)), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	testItemRepository(t, func(t *testing.T) repository.ItemRepository {
		// every subtest starts from an empty table
		require.NoError(t, db.Exec("TRUNCATE todo_items RESTART IDENTITY").Error)
		return repository.NewGormItemRepository(db)
	})
}
