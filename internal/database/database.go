// package database opens and migrates the relational store behind the todo api
package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cirocosta/todo-api/internal/config"
	"github.com/cirocosta/todo-api/internal/model"
)

// Open connects to the database described by cfg, configures the connection
// pool and migrates the todo_items table.
func Open(cfg config.Database, production bool, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      newGormLogger(log, production),
		PrepareStmt: cfg.Driver == config.DriverPostgres,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Info("connected to database", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates or updates the todo_items table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.TodoItem{}); err != nil {
		return fmt.Errorf("migrate todo items: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(PostgresDSN(cfg)), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// PostgresDSN returns cfg.DSN when set, otherwise builds a keyword/value DSN
// from the individual connection settings.
func PostgresDSN(cfg config.Database) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
		cfg.SSLMode,
	)
}

// newGormLogger routes GORM's log output into slog
func newGormLogger(log *slog.Logger, production bool) logger.Interface {
	level := logger.Info
	slogLevel := slog.LevelDebug
	if production {
		level = logger.Warn
		slogLevel = slog.LevelWarn
	}

	return logger.New(
		slog.NewLogLogger(log.With("component", "gorm").Handler(), slogLevel),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}
