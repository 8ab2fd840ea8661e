package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/pkg/httputil"
	"github.com/raselahmedweb/innovensky/pkg/validator"
)

// TeamHandler handles the admin team API.
type TeamHandler struct {
	service *service.TeamService
	logger  *slog.Logger
}

// NewTeamHandler creates a new team HTTP handler.
func NewTeamHandler(svc *service.TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{service: svc, logger: logger}
}

// List handles GET /api/admin/team.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListAdmin(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: members})
}

// Create handles POST /api/admin/team.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.TeamMemberInput
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	member, err := h.service.Create(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: member})
}

// Update handles PUT /api/admin/team/{id}.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req domain.TeamMemberInput
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	member, err := h.service.Update(r.Context(), id.String(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: member})
}

// Delete handles DELETE /api/admin/team/{id}.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteMessage(w, "Team member deleted successfully")
}
