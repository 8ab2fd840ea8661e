package http

import (
	"log/slog"
	"net/http"

	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/pkg/httputil"
)

// StatsHandler serves the dashboard counters.
type StatsHandler struct {
	service *service.StatsService
	logger  *slog.Logger
}

// NewStatsHandler creates a new stats HTTP handler.
func NewStatsHandler(svc *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{service: svc, logger: logger}
}

// Get handles GET /api/admin/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Get(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}
