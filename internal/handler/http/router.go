package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/internal/web"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
	"github.com/raselahmedweb/innovensky/pkg/health"
	"github.com/raselahmedweb/innovensky/pkg/httputil"
	"github.com/raselahmedweb/innovensky/pkg/middleware"
)

// RouterDeps is everything NewRouter wires together.
type RouterDeps struct {
	AppName string

	Projects *service.ProjectService
	Team     *service.TeamService
	Messages *service.MessageService
	Stats    *service.StatsService

	Verifier CredentialVerifier
	Gate     *auth.Gate
	Limiter  LoginLimiter
	Proxies  *ProxyTrust // nil keys the login limiter on RemoteAddr alone
	Cookie   CookieConfig

	Renderer   *web.Renderer
	PageMaxAge int // Cache-Control max-age of the marketing pages, in seconds
	Health     *health.Handler
	CORS       middleware.CORSConfig
	Logger     *slog.Logger
}

// NewRouter creates a chi router with every page and API route registered.
// All admin routes, pages and JSON alike, sit behind a single Guard.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestLogging(d.Logger))
	r.Use(middleware.Tracing(d.AppName))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.PrometheusMetrics(d.AppName))
	r.Use(APIOnly(middleware.CORS(d.CORS)))

	// Health check endpoints
	r.Get("/health/live", d.Health.LivenessHandler())
	r.Get("/health/ready", d.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	pages := NewPageHandler(d.Projects, d.Team, d.Messages, d.Stats, d.Renderer, d.Logger)
	authHandler := NewAuthHandler(d.Verifier, d.Gate, d.Limiter, d.Proxies, d.Cookie, d.Renderer, d.Logger)
	contactHandler := NewContactHandler(d.Messages, d.Logger)
	projectHandler := NewProjectHandler(d.Projects, d.Logger)
	teamHandler := NewTeamHandler(d.Team, d.Logger)
	messageHandler := NewMessageHandler(d.Messages, d.Logger)
	statsHandler := NewStatsHandler(d.Stats, d.Logger)

	// Marketing pages (public)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheControl(d.PageMaxAge))

		r.Get("/", pages.Home)
		r.Get("/about", pages.About)
		r.Get("/portfolio", pages.Portfolio)
		r.Get("/services", pages.Services)
		r.Get("/contact", pages.Contact)
	})
	r.Post("/contact", pages.ContactForm)

	// Sign-in pages (public)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)

		r.Get(LoginPath, authHandler.LoginPage)
		r.Post(LoginPath, authHandler.LoginForm)
		r.Post("/admin/logout", authHandler.LogoutForm)
	})

	// JSON endpoints (public)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(ContentTypeJSON)

		r.Post("/api/contact", contactHandler.Submit)
		r.Post("/api/auth/login", authHandler.Login)
		r.Post("/api/auth/logout", authHandler.Logout)
	})

	// Admin area
	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(Guard(d.Gate, d.Cookie.Name, domain.RoleAdmin, d.Renderer))

		r.Get("/admin", pages.Dashboard)
		r.Get("/admin/*", pages.NotFound)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Get("/api/admin/session", authHandler.Session)
			r.Get("/api/admin/stats", statsHandler.Get)

			r.Get("/api/admin/projects", projectHandler.List)
			r.Post("/api/admin/projects", projectHandler.Create)
			r.Put("/api/admin/projects/{id}", projectHandler.Update)
			r.Delete("/api/admin/projects/{id}", projectHandler.Delete)

			r.Get("/api/admin/team", teamHandler.List)
			r.Post("/api/admin/team", teamHandler.Create)
			r.Put("/api/admin/team/{id}", teamHandler.Update)
			r.Delete("/api/admin/team/{id}", teamHandler.Delete)

			r.Get("/api/admin/messages", messageHandler.List)
			r.Patch("/api/admin/messages/{id}", messageHandler.MarkRead)
			r.Delete("/api/admin/messages/{id}", messageHandler.Delete)

			r.HandleFunc("/api/admin/*", func(w http.ResponseWriter, r *http.Request) {
				httputil.WriteError(w, r, apperrors.NotFound("Route"), d.Logger)
			})
		})
	})

	r.NotFound(pages.NotFound)

	return r
}
