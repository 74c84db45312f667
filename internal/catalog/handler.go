package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ruchirachamara/assessment/internal/server"
	"github.com/ruchirachamara/assessment/pkg/models"
	"github.com/ruchirachamara/assessment/pkg/query"
)

// CreateItemRequest is the body for POST /api/items. Price is a pointer so
// an absent field is distinguishable from an explicit zero.
type CreateItemRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Handler serves the item collection API.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new items API handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/items", h.handleList)
	mux.HandleFunc("POST /api/items", h.handleCreate)
	mux.HandleFunc("GET /api/items/categories", h.handleCategories)
	mux.HandleFunc("GET /api/items/{id}", h.handleGet)
}

// handleList returns one page of items after filtering, search, and sort.
//
//	@Summary		List items
//	@Description	Returns a page of catalog items. Supports category filtering, free-text search across name, category, description, id, and price, sorting on a whitelisted field, and pagination.
//	@Tags			items
//	@Produce		json
//	@Param			q query string false "Free-text search term (case-insensitive substring)"
//	@Param			category query string false "Exact category filter (case-insensitive)"
//	@Param			sortBy query string false "Sort field: id, name, price, category, createdAt" default(id)
//	@Param			sortOrder query string false "Sort direction: asc or desc" default(asc)
//	@Param			page query int false "Page number, 1-based" default(1)
//	@Param			limit query int false "Page size, clamped to 1..100" default(10)
//	@Success		200 {object} query.PageResult
//	@Failure		500 {object} server.Problem
//	@Router			/items [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Load()
	if err != nil {
		h.logger.Error("failed to load items", zap.Error(err))
		server.InternalError(w, "failed to load items", r.URL.Path)
		return
	}

	writeJSON(w, http.StatusOK, query.Apply(items, query.ParseQuery(r.URL.Query())))
}

// handleCategories returns the distinct categories in the collection.
//
//	@Summary		List categories
//	@Description	Returns the sorted distinct categories present in the collection together with their count.
//	@Tags			items
//	@Produce		json
//	@Success		200 {object} models.CategoryList
//	@Failure		500 {object} server.Problem
//	@Router			/items/categories [get]
func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.Categories()
	if err != nil {
		h.logger.Error("failed to load categories", zap.Error(err))
		server.InternalError(w, "failed to load items", r.URL.Path)
		return
	}

	writeJSON(w, http.StatusOK, models.CategoryList{
		Categories: categories,
		Total:      len(categories),
	})
}

// handleGet returns a single item by ID.
//
//	@Summary		Get one item
//	@Description	Returns the item with the given ID.
//	@Tags			items
//	@Produce		json
//	@Param			id path int true "Item ID"
//	@Success		200 {object} models.Item
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Failure		500 {object} server.Problem
//	@Router			/items/{id} [get]
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		server.BadRequest(w, "Invalid item ID", r.URL.Path)
		return
	}

	item, err := h.store.Get(id)
	switch {
	case errors.Is(err, ErrNotFound):
		server.NotFound(w, "Item not found", r.URL.Path)
	case err != nil:
		h.logger.Error("failed to load items", zap.Error(err))
		server.InternalError(w, "failed to load items", r.URL.Path)
	default:
		writeJSON(w, http.StatusOK, item)
	}
}

// handleCreate validates and stores a new item. Validation runs before any
// file I/O so a bad request never touches the collection.
//
//	@Summary		Create an item
//	@Description	Appends a new item to the collection. The server assigns the ID and creation timestamp.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			item body CreateItemRequest true "Item to create"
//	@Success		201 {object} models.Item
//	@Failure		400 {object} server.Problem
//	@Failure		500 {object} server.Problem
//	@Router			/items [post]
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.BadRequest(w, "invalid request body", r.URL.Path)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		server.BadRequest(w, "name is required", r.URL.Path)
		return
	}
	if req.Price == nil {
		server.BadRequest(w, "price is required", r.URL.Path)
		return
	}
	if *req.Price < 0 {
		server.BadRequest(w, "price must be non-negative", r.URL.Path)
		return
	}

	created, err := h.store.Create(models.Item{
		Name:        name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error("failed to save item", zap.Error(err))
		server.InternalError(w, "failed to save item", r.URL.Path)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
