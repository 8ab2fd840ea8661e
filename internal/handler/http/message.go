package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/pkg/httputil"
	"github.com/raselahmedweb/innovensky/pkg/pagination"
	"github.com/raselahmedweb/innovensky/pkg/validator"
)

// MessageHandler handles the admin inbox API.
type MessageHandler struct {
	service *service.MessageService
	logger  *slog.Logger
}

// NewMessageHandler creates a new message HTTP handler.
func NewMessageHandler(svc *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{service: svc, logger: logger}
}

// MarkReadRequest is the body of PATCH /api/admin/messages/{id}.
type MarkReadRequest struct {
	IsRead *bool `json:"is_read" validate:"required"`
}

// List handles GET /api/admin/messages?page=&per_page=&unread=true.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.MessageFilter{UnreadOnly: r.URL.Query().Get("unread") == "true"}

	result, err := h.service.List(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// MarkRead handles PATCH /api/admin/messages/{id}.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req MarkReadRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	msg, err := h.service.MarkRead(r.Context(), id.String(), *req.IsRead)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: msg})
}

// Delete handles DELETE /api/admin/messages/{id}.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteMessage(w, "Message deleted successfully")
}
