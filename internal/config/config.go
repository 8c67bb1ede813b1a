// package config loads the todo api configuration from defaults, an optional
// YAML file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is the complete service configuration
type Config struct {
	Addr     string   `yaml:"addr"`
	Env      string   `yaml:"env"`
	Seed     bool     `yaml:"seed"`
	Log      Log      `yaml:"log"`
	Database Database `yaml:"database"`
}

// Log configures the slog handler
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Database configures the item store
type Database struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		Addr: ":8080",
		Env:  "development",
		Seed: true,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Database: Database{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "todo",
			SSLMode:         "disable",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment are used. A missing .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks the configuration for values the service cannot run with
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" && c.Database.Host == "" {
			errs = append(errs, errors.New("database: postgres needs a dsn or a host"))
		}
	case DriverSQLite:
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database: sqlite needs a dsn"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("database: unknown driver %q", c.Database.Driver))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// SlogLevel parses the configured level
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log: invalid level %q", l.Level)
	}
	return level, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Addr, "TODO_ADDR")
	setString(&cfg.Env, "TODO_ENV")
	setString(&cfg.Log.Level, "TODO_LOG_LEVEL")
	setString(&cfg.Log.Format, "TODO_LOG_FORMAT")
	setString(&cfg.Database.Driver, "TODO_DB_DRIVER")
	setString(&cfg.Database.DSN, "TODO_DB_DSN")
	setString(&cfg.Database.Host, "TODO_DB_HOST")
	setString(&cfg.Database.User, "TODO_DB_USER")
	setString(&cfg.Database.Password, "TODO_DB_PASSWORD")
	setString(&cfg.Database.Name, "TODO_DB_NAME")
	setString(&cfg.Database.SSLMode, "TODO_DB_SSLMODE")

	if v, ok := lookup("TODO_SEED"); ok {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TODO_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	if v, ok := lookup("TODO_DB_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TODO_DB_PORT: %w", err)
		}
		cfg.Database.Port = port
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
