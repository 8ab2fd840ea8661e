// Package web renders the public site and admin pages from embedded
// html/template files.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/pkg/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Render.
const (
	PageHome      = "home"
	PageAbout     = "about"
	PagePortfolio = "portfolio"
	PageServices  = "services"
	PageContact   = "contact"
	PageLogin     = "login"
	PageDashboard = "dashboard"
	PageError     = "error"
)

// View is the data every page template receives.
type View struct {
	Title   string
	Flash   string
	Account *auth.Claims
	Data    any
	Year    int
}

// LoginData fills the login form.
type LoginData struct {
	Email string
}

// DashboardData fills the admin dashboard.
type DashboardData struct {
	Stats    *domain.Stats
	Projects []domain.Project
	Team     []domain.TeamMember
	Messages []domain.ContactMessage
}

// ErrorData fills the error page.
type ErrorData struct {
	Heading string
	Message string
}

// Renderer executes page templates. Each page is parsed together with the
// shared layout so pages can each define their own "content" block.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

var funcs = template.FuncMap{
	"anchor": slug.Generate,
}

// NewRenderer parses the embedded templates.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	return newRenderer(templateFS, "templates", logger)
}

func newRenderer(fsys fs.FS, dir string, logger *slog.Logger) (*Renderer, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("open template dir: %w", err)
	}
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(sub, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	names, err := fs.Glob(sub, "*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == "layout.html" {
			continue
		}
		t, err := template.Must(base.Clone()).ParseFS(sub, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = t
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes page with status. Output is buffered so a template error
// still produces a clean 500.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, v View) {
	t, ok := rd.pages[page]
	if !ok {
		rd.logger.ErrorContext(r.Context(), "unknown page template", slog.String("page", page))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if v.Flash == "" {
		v.Flash = FlashFromRequest(r)
	}
	if v.Year == 0 {
		v.Year = time.Now().Year()
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		rd.logger.ErrorContext(r.Context(), "template render failed",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError writes the error page.
func (rd *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int, heading, message string) {
	rd.Render(w, r, status, PageError, View{
		Title: heading,
		Data:  ErrorData{Heading: heading, Message: message},
	})
}

// Flash identifies a message shown once after a redirect. Only the code
// travels in the URL, so a crafted link cannot put arbitrary text on a page.
type Flash string

// Known flashes.
const (
	FlashContactSent Flash = "contact-sent"
	FlashSignedOut   Flash = "signed-out"
)

var flashMessages = map[Flash]string{
	FlashContactSent: "Message sent successfully",
	FlashSignedOut:   "You have been signed out",
}

// Message returns the text for f, or "" for an unknown code.
func (f Flash) Message() string {
	return flashMessages[f]
}

// FlashFromRequest returns the message for the flash code in the query
// string. Unknown codes yield "".
func FlashFromRequest(r *http.Request) string {
	return Flash(strings.TrimSpace(r.URL.Query().Get("flash"))).Message()
}

// RedirectWithFlash sends a 303 to target with the flash code in its query
// string.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, target string, flash Flash) {
	if strings.TrimSpace(target) == "" {
		target = "/"
	}
	if flash.Message() == "" {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	u, err := url.Parse(target)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	q := u.Query()
	q.Set("flash", string(flash))
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}
