package stats

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruchirachamara/assessment/internal/server"
)

// MessageResponse is the acknowledgment body for cache operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// Handler serves the stats API.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new stats API handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/stats", h.handleGet)
	mux.HandleFunc("DELETE /api/stats/cache", h.handleInvalidate)
	mux.HandleFunc("GET /api/stats/cache/status", h.handleStatus)
}

// handleGet returns the collection aggregates, cached where possible.
//
//	@Summary		Collection statistics
//	@Description	Returns the item count and average price. Results are cached until the TTL expires or the collection file changes.
//	@Tags			stats
//	@Produce		json
//	@Success		200 {object} models.Stats
//	@Failure		500 {object} server.Problem
//	@Router			/stats [get]
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Get()
	if err != nil {
		h.logger.Error("failed to compute stats", zap.Error(err))
		server.InternalError(w, "failed to compute stats", r.URL.Path)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// handleInvalidate drops the stats cache.
//
//	@Summary		Invalidate the stats cache
//	@Description	Drops the cached aggregates so the next stats request recomputes them.
//	@Tags			stats
//	@Produce		json
//	@Success		200 {object} MessageResponse
//	@Router			/stats/cache [delete]
func (h *Handler) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	h.service.Invalidate(SourceManual)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Stats cache cleared"})
}

// handleStatus reports the cache state.
//
//	@Summary		Stats cache status
//	@Description	Reports whether aggregates are cached, their age in milliseconds, and whether the cache is still valid.
//	@Tags			stats
//	@Produce		json
//	@Success		200 {object} models.CacheStatus
//	@Router			/stats/cache/status [get]
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Status())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
