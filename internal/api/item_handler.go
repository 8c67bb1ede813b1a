package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cirocosta/todo-api/internal/model"
	"github.com/cirocosta/todo-api/internal/repository"
	"github.com/cirocosta/todo-api/internal/service"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// ItemHandler handles HTTP requests for todo item operations
type ItemHandler struct {
	itemService ItemService
	validator   *requestValidator
	logger      *slog.Logger
}

// NewItemHandler creates a new item handler with the given service
func NewItemHandler(itemService ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validator:   newRequestValidator(),
		logger:      logger,
	}
}

// ListItems handles GET /items
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.ListItems(r.Context())
	if err != nil {
		h.internalError(w, r, "error listing items", err)
		return
	}

	if items == nil {
		items = []model.TodoItem{}
	}

	writeJSON(w, items, http.StatusOK)
}

// GetItem handles GET /items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "error getting item", err)
		return
	}

	writeJSON(w, item, http.StatusOK)
}

// ListIncoming handles GET /items/incoming/{id}, where id selects the
// window: 1 today, 2 tomorrow, 3 this week
func (h *ItemHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	items, err := h.itemService.ListIncoming(r.Context(), service.Window(id))
	if err != nil {
		h.handleError(w, r, "error listing incoming items", err)
		return
	}

	writeJSON(w, items, http.StatusOK)
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req model.TodoItemRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), req)
	if err != nil {
		h.internalError(w, r, "error creating item", err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/items/%d", item.ID))
	writeJSON(w, item, http.StatusCreated)
}

// UpdateItem handles PUT /items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.TodoItemRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	if _, err := h.itemService.UpdateItem(r.Context(), id, req); err != nil {
		h.handleError(w, r, "error updating item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdatePercentComplete handles PUT /items/{id}/percent
func (h *ItemHandler) UpdatePercentComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.PercentRequest
	if !h.decodeValid(w, r, &req) {
		return
	}

	if _, err := h.itemService.UpdatePercentComplete(r.Context(), id, req.PercentComplete); err != nil {
		h.handleError(w, r, "error updating item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkDone handles PUT /items/{id}/done. The request body is ignored.
func (h *ItemHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.itemService.MarkDone(r.Context(), id); err != nil {
		h.handleError(w, r, "error marking item done", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteItem handles DELETE /items/{id}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), id); err != nil {
		h.handleError(w, r, "error deleting item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health
func (h *ItemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.itemService.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", "error", err)
		writeJSON(w, model.HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, model.HealthResponse{Status: "ok"}, http.StatusOK)
}

// decodeValid decodes the JSON body into dst and validates it, writing a
// 400 response and returning false on failure. The body must hold exactly
// one JSON value.
func (h *ItemHandler) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		writeJSON(w, model.ErrorResponse{
			Error:  "validation failed",
			Fields: fieldErrors(err),
		}, http.StatusBadRequest)
		return false
	}

	return true
}

// handleError maps not found errors to an empty 404 and anything else to 500
func (h *ItemHandler) handleError(w http.ResponseWriter, r *http.Request, message string, err error) {
	if isNotFound(err) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.internalError(w, r, message, err)
}

func (h *ItemHandler) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.logger.Error(message,
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestID(r.Context()),
	)
	writeError(w, message, http.StatusInternalServerError)
}

func isNotFound(err error) bool {
	var notFoundErr repository.ErrItemNotFound
	return errors.As(err, &notFoundErr) ||
		errors.Is(err, service.ErrUnknownWindow) ||
		errors.Is(err, service.ErrNoIncomingItems)
}

// pathID parses the {id} path value, writing a 400 when it is not an integer
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, model.ErrorResponse{Error: message}, statusCode)
}
