package http

import (
	"log/slog"
	"net/http"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/pkg/httputil"
	"github.com/raselahmedweb/innovensky/pkg/validator"
)

// ContactHandler handles the public JSON contact endpoint.
type ContactHandler struct {
	service *service.MessageService
	logger  *slog.Logger
}

// NewContactHandler creates a new contact HTTP handler.
func NewContactHandler(svc *service.MessageService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: svc, logger: logger}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactInput
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if _, err := h.service.Submit(r.Context(), req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteMessage(w, msgContactSent)
}
