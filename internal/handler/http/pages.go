package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/internal/web"
	"github.com/raselahmedweb/innovensky/pkg/logger"
	"github.com/raselahmedweb/innovensky/pkg/pagination"
	"github.com/raselahmedweb/innovensky/pkg/validator"
)

const (
	msgContactSent    = "Message sent successfully"
	msgContactInvalid = "All fields are required"
	msgContactFailed  = "Failed to send message. Please try again."
)

// dashboardMessages is how many recent messages the dashboard lists.
const dashboardMessages = 10

// PageHandler serves the server-rendered public pages and the admin
// dashboard.
type PageHandler struct {
	projects *service.ProjectService
	team     *service.TeamService
	messages *service.MessageService
	stats    *service.StatsService
	renderer *web.Renderer
	logger   *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(
	projects *service.ProjectService,
	team *service.TeamService,
	messages *service.MessageService,
	stats *service.StatsService,
	renderer *web.Renderer,
	logger *slog.Logger,
) *PageHandler {
	return &PageHandler{
		projects: projects,
		team:     team,
		messages: messages,
		stats:    stats,
		renderer: renderer,
		logger:   logger,
	}
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, web.PageHome, web.View{Data: web.Home()})
}

// Services handles GET /services.
func (h *PageHandler) Services(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, web.PageServices, web.View{Title: "Services", Data: web.Services()})
}

// About handles GET /about. A store failure renders an empty team.
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	members, err := h.team.ListPublic(r.Context())
	if err != nil {
		h.log(r).ErrorContext(r.Context(), "failed to load team members", slog.String("error", err.Error()))
		members = []domain.TeamMember{}
	}
	h.renderer.Render(w, r, http.StatusOK, web.PageAbout, web.View{Title: "About", Data: members})
}

// Portfolio handles GET /portfolio. A store failure renders no projects.
func (h *PageHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.Portfolio(r.Context())
	if err != nil {
		h.log(r).ErrorContext(r.Context(), "failed to load projects", slog.String("error", err.Error()))
		p = &service.Portfolio{}
	}
	h.renderer.Render(w, r, http.StatusOK, web.PagePortfolio, web.View{Title: "Portfolio", Data: p})
}

// Contact handles GET /contact.
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, web.PageContact, web.View{Title: "Contact"})
}

// ContactForm handles POST /contact.
func (h *PageHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, validator.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderContact(w, r, http.StatusBadRequest, msgContactInvalid)
		return
	}

	in := domain.ContactInput{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}
	if err := validator.Validate(&in); err != nil {
		var ve *validator.ValidationError
		msg := msgContactInvalid
		if errors.As(err, &ve) {
			msg = ve.Summary()
		}
		h.renderContact(w, r, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.messages.Submit(r.Context(), in); err != nil {
		h.log(r).ErrorContext(r.Context(), "failed to save contact message", slog.String("error", err.Error()))
		h.renderContact(w, r, http.StatusInternalServerError, msgContactFailed)
		return
	}

	web.RedirectWithFlash(w, r, "/contact", web.FlashContactSent)
}

// Dashboard handles GET /admin.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := ClaimsFromContext(ctx)

	stats, err := h.stats.Get(ctx)
	if err != nil {
		h.dashboardError(w, r, err)
		return
	}
	projects, err := h.projects.List(ctx)
	if err != nil {
		h.dashboardError(w, r, err)
		return
	}
	team, err := h.team.ListAdmin(ctx)
	if err != nil {
		h.dashboardError(w, r, err)
		return
	}
	recent, err := h.messages.List(ctx, domain.MessageFilter{}, pagination.Params{Page: 1, PerPage: dashboardMessages})
	if err != nil {
		h.dashboardError(w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, web.PageDashboard, web.View{
		Title:   "Dashboard",
		Account: &claims,
		Data: web.DashboardData{
			Stats:    stats,
			Projects: projects,
			Team:     team,
			Messages: recent.Items,
		},
	})
}

// NotFound renders the 404 page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderError(w, r, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
}

func (h *PageHandler) dashboardError(w http.ResponseWriter, r *http.Request, err error) {
	h.log(r).ErrorContext(r.Context(), "failed to load dashboard", slog.String("error", err.Error()))
	h.renderer.RenderError(w, r, http.StatusInternalServerError,
		"Something went wrong", "The dashboard could not be loaded. Please try again.")
}

func (h *PageHandler) renderContact(w http.ResponseWriter, r *http.Request, status int, flash string) {
	h.renderer.Render(w, r, status, web.PageContact, web.View{Title: "Contact", Flash: flash})
}

func (h *PageHandler) log(r *http.Request) *slog.Logger {
	if l := logger.FromContext(r.Context()); l != slog.Default() {
		return l
	}
	return h.logger
}
