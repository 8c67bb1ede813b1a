// package api provides the HTTP API for the application
package api

import (
	"context"
	"log/slog"

	"github.com/cirocosta/todo-api/internal/model"
	"github.com/cirocosta/todo-api/internal/service"
	"github.com/cirocosta/todo-api/pkg/router"
)

// ItemService defines the minimal interface needed by the API
type ItemService interface {
	// ListItems returns all items
	ListItems(ctx context.Context) ([]model.TodoItem, error)

	// GetItem returns an item by ID
	GetItem(ctx context.Context, id int64) (model.TodoItem, error)

	// ListIncoming returns items expiring in the given window
	ListIncoming(ctx context.Context, window service.Window) ([]model.TodoItem, error)

	// CreateItem creates a new item
	CreateItem(ctx context.Context, req model.TodoItemRequest) (model.TodoItem, error)

	// UpdateItem overwrites the mutable fields of an item
	UpdateItem(ctx context.Context, id int64, req model.TodoItemRequest) (model.TodoItem, error)

	// UpdatePercentComplete overwrites only the percent complete
	UpdatePercentComplete(ctx context.Context, id int64, percent float64) (model.TodoItem, error)

	// MarkDone flags an item as complete
	MarkDone(ctx context.Context, id int64) (model.TodoItem, error)

	// DeleteItem deletes an item
	DeleteItem(ctx context.Context, id int64) error

	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error
}

// API holds the components needed to register routes
type API struct {
	router      *router.DocRouter
	itemHandler *ItemHandler
}

// NewRouter creates a new router with all routes configured
func NewRouter(itemService ItemService, logger *slog.Logger) *router.DocRouter {
	r := router.NewDocRouter("Todo API",
		"CRUD operations over to-do items",
		"1.0.0",
	)

	r.Use(requestIDMiddleware, loggerMiddleware(logger), recovererMiddleware(logger))

	api := &API{router: r, itemHandler: NewItemHandler(itemService, logger)}
	api.registerRoutes()

	return r
}

// registerRoutes configures all API routes with documentation
func (api *API) registerRoutes() {
	errSchema := &model.ErrorResponse{}
	invalidID := router.Example{
		ContentType: "application/json",
		Value:       `{"error": "invalid id"}`,
	}

	api.router.WithTag("Items", "Operations on to-do items").
		WithTag("Core", "Service endpoints")

	api.router.Route("GET", "/health", api.itemHandler.Health).
		WithName("Health Check").
		WithDescription("Reports whether the item store is reachable").
		WithResponse("200", "store reachable", &model.HealthResponse{}).
		WithErrorResponse("503", "store unreachable", &model.HealthResponse{}).
		WithTags("Core").
		Register()

	api.router.Route("GET", "/openapi.json", api.router.OpenAPIHandler()).
		WithName("OpenAPI Document").
		WithDescription("This document").
		WithTags("Core").
		Register()

	api.router.Route("GET", "/items", api.itemHandler.ListItems).
		WithName("List Items").
		WithDescription("Get every to-do item").
		WithResponse("200", "all items", []model.TodoItem{}).
		WithErrorResponse("500", "Internal Server Error", errSchema).
		WithTags("Items").
		Register()

	api.router.Route("GET", "/items/{id}", api.itemHandler.GetItem).
		WithName("Get Item").
		WithDescription("Get a to-do item by id").
		WithParam("id", "integer", "item id").
		WithResponse("200", "the item", &model.TodoItem{}).
		WithErrorResponse("400", "Bad Request", errSchema, invalidID).
		WithErrorResponse("404", "Not Found", nil).
		WithTags("Items").
		Register()

	api.router.Route("GET", "/items/incoming/{id}", api.itemHandler.ListIncoming).
		WithName("List Incoming Items").
		WithDescription("Get items expiring today (1), tomorrow (2) or this week (3)").
		WithParam("id", "integer", "window selector: 1 today, 2 tomorrow, 3 this week").
		WithResponse("200", "items expiring in the window", []model.TodoItem{}).
		WithErrorResponse("400", "Bad Request", errSchema, invalidID).
		WithErrorResponse("404", "No items in the window, or unknown window", nil).
		WithTags("Items").
		Register()

	api.router.Route("POST", "/items", api.itemHandler.CreateItem).
		WithName("Create Item").
		WithDescription("Create a new to-do item. The Location header points at it.").
		WithRequest(&model.TodoItemRequest{}).
		WithResponse("201", "the created item", &model.TodoItem{}).
		WithErrorResponse("400", "Bad Request", errSchema,
			router.Example{
				ContentType: "application/json",
				Value:       `{"error": "validation failed", "fields": {"name": "name is required"}}`,
			}).
		WithTags("Items").
		Register()

	api.router.Route("PUT", "/items/{id}", api.itemHandler.UpdateItem).
		WithName("Update Item").
		WithDescription("Overwrite name, expiry, description, percent complete and completion").
		WithParam("id", "integer", "item id").
		WithRequest(&model.TodoItemRequest{}).
		WithResponse("204", "updated", nil).
		WithErrorResponse("400", "Bad Request", errSchema).
		WithErrorResponse("404", "Not Found", nil).
		WithTags("Items").
		Register()

	api.router.Route("PUT", "/items/{id}/percent", api.itemHandler.UpdatePercentComplete).
		WithName("Update Percent Complete").
		WithDescription("Overwrite only the percent complete of an item").
		WithParam("id", "integer", "item id").
		WithRequest(&model.PercentRequest{}).
		WithResponse("204", "updated", nil).
		WithErrorResponse("400", "Bad Request", errSchema).
		WithErrorResponse("404", "Not Found", nil).
		WithTags("Items").
		Register()

	api.router.Route("PUT", "/items/{id}/done", api.itemHandler.MarkDone).
		WithName("Mark Item Done").
		WithDescription("Mark an item complete. Any request body is ignored.").
		WithParam("id", "integer", "item id").
		WithResponse("204", "marked complete", nil).
		WithErrorResponse("400", "Bad Request", errSchema, invalidID).
		WithErrorResponse("404", "Not Found", nil).
		WithTags("Items").
		Register()

	api.router.Route("DELETE", "/items/{id}", api.itemHandler.DeleteItem).
		WithName("Delete Item").
		WithDescription("Delete a to-do item").
		WithParam("id", "integer", "item id").
		WithResponse("204", "deleted", nil).
		WithErrorResponse("400", "Bad Request", errSchema, invalidID).
		WithErrorResponse("404", "Not Found", nil).
		WithTags("Items").
		Register()
}
