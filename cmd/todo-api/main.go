// main is the entry point for the todo api
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cirocosta/todo-api/internal/api"
	"github.com/cirocosta/todo-api/internal/config"
	"github.com/cirocosta/todo-api/internal/database"
	"github.com/cirocosta/todo-api/internal/repository"
	"github.com/cirocosta/todo-api/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	os.Args = os.Args[1:]

	switch cmd {
	case "run":
		if err := runServer(); err != nil {
			fmt.Fprintf(os.Stderr, "todo-api: %v\n", err)
			os.Exit(1)
		}
	case "openapi-gen":
		generateOpenAPI()
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`
Usage: todo-api <command> [options]

Commands:
  run          Start the HTTP server
  openapi-gen  Generate OpenAPI documentation

Run 'todo-api <command> -h' for more information on a command.
`)
}

func newLogger(cfg config.Log) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// openRepository returns the configured item store and a function closing it
func openRepository(cfg config.Config, logger *slog.Logger) (repository.ItemRepository, func() error, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory store, items are lost on exit")
		return repository.NewInMemoryItemRepository(), func() error { return nil }, nil
	}

	db, err := database.Open(cfg.Database, cfg.IsProduction(), logger)
	if err != nil {
		return nil, nil, err
	}

	return repository.NewGormItemRepository(db), func() error { return database.Close(db) }, nil
}

func runServer() error {
	configPath := flag.String("config", "", "Path to a YAML config file")
	addr := flag.String("addr", "", "HTTP server address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	// create context that listens for interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// setup dependencies
	itemRepo, closeRepo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Error("close store", "error", err)
		}
	}()

	itemService := service.NewItemService(itemRepo, service.WithLogger(logger))

	if cfg.Seed {
		if err := itemService.Seed(ctx); err != nil {
			return err
		}
	}

	router := api.NewRouter(itemService, logger)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", cfg.Addr,
			"driver", cfg.Database.Driver,
			"routes", len(router.Routes()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	// shutdown server gracefully
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func generateOpenAPI() {
	output := flag.String("o", "openapi.json", "Output file path")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL listed in the document, empty to omit")
	flag.Parse()

	r := api.NewRouter(api.NewNoopItemService(), slog.Default())
	if *serverURL != "" {
		r.WithServer(*serverURL, "API server")
	}

	data, err := r.OpenAPIJSON()
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile(*output, data, 0644); err != nil {
		panic(fmt.Errorf("write openapi spec to file '%s': %w", *output, err))
	}

	fmt.Printf("OpenAPI spec generated at %s\n", *output)
}
