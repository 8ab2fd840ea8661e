package web

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/pkg/slug"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	rd, err := NewRenderer(slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return rd
}

func TestNewRenderer_ParsesEveryPage(t *testing.T) {
	rd := newTestRenderer(t)

	for _, page := range []string{
		PageHome, PageAbout, PagePortfolio, PageServices,
		PageContact, PageLogin, PageDashboard, PageError,
	} {
		assert.Contains(t, rd.pages, page)
	}
	assert.NotContains(t, rd.pages, "layout")
}

func TestRender_PublicPages(t *testing.T) {
	rd := newTestRenderer(t)

	tests := []struct {
		page string
		data any
		want string
	}{
		{PageHome, Home(), "Why choose us"},
		{PageServices, Services(), "Security Audits"},
		{PageAbout, []domain.TeamMember{{Name: "Ana", Role: "CTO", Bio: "Leads."}}, "Ana"},
		{PageAbout, []domain.TeamMember{}, "coming soon"},
		{PagePortfolio, &service.Portfolio{Featured: []domain.Project{{Title: "Fleet", Technologies: []string{"Go"}}}}, "Featured projects"},
		{PagePortfolio, &service.Portfolio{}, "No projects published yet"},
		{PageContact, nil, `action="/contact"`},
	}
	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			rd.Render(rec, req, http.StatusOK, tt.page, View{Data: tt.data})

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestRender_EscapesContent(t *testing.T) {
	rd := newTestRenderer(t)
	rec := httptest.NewRecorder()

	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/about", nil), http.StatusOK, PageAbout,
		View{Data: []domain.TeamMember{{Name: "<script>alert(1)</script>"}}})

	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestRender_Dashboard(t *testing.T) {
	rd := newTestRenderer(t)
	rec := httptest.NewRecorder()
	claims := &auth.Claims{DisplayName: "Site Admin", Identifier: "admin@innovensky.com", Role: domain.RoleAdmin}

	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/admin", nil), http.StatusOK, PageDashboard, View{
		Account: claims,
		Data: DashboardData{
			Stats:    &domain.Stats{Projects: 3, UnreadMessages: 1},
			Messages: []domain.ContactMessage{{ID: "m-1", Name: "Sam", Message: "Hi", CreatedAt: time.Now()}},
		},
	})

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Signed in as Site Admin")
	assert.Contains(t, body, `data-id="m-1"`)
	assert.Contains(t, body, `action="/admin/logout"`)
}

func TestRender_FlashFromQuery(t *testing.T) {
	rd := newTestRenderer(t)
	rec := httptest.NewRecorder()

	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/contact?flash=contact-sent", nil),
		http.StatusOK, PageContact, View{})

	assert.Contains(t, rec.Body.String(), "Message sent successfully")
}

func TestRender_IgnoresArbitraryFlashText(t *testing.T) {
	rd := newTestRenderer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/admin/login?flash="+url.QueryEscape("Session expired, re-enter your password at evil.example"), nil)

	rd.Render(rec, req, http.StatusOK, PageLogin, View{Data: LoginData{}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "evil.example")
}

func TestFlashFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"flash=signed-out", "You have been signed out"},
		{"flash=contact-sent", "Message sent successfully"},
		{"flash=Message+sent+successfully", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, FlashFromRequest(req))
		})
	}
}

func TestRender_UnknownPage(t *testing.T) {
	rd := newTestRenderer(t)
	rec := httptest.NewRecorder()

	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "nope", View{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRender_ExecutionErrorIsClean500(t *testing.T) {
	fsys := fstest.MapFS{
		"t/layout.html": {Data: []byte(`{{define "layout"}}<p>{{template "content" .}}</p>{{end}}`)},
		"t/bad.html":    {Data: []byte(`{{define "content"}}{{.Data.Missing}}{{end}}`)},
	}
	rd, err := newRenderer(fsys, "t", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	rec := httptest.NewRecorder()

	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "bad", View{Data: 42})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<p>")
}

func TestRenderError(t *testing.T) {
	rd := newTestRenderer(t)
	rec := httptest.NewRecorder()

	rd.RenderError(rec, httptest.NewRequest(http.MethodGet, "/admin", nil), http.StatusForbidden,
		"Access denied", "You do not have permission to view this page.")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied")
}

func TestRedirectWithFlash(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", nil)

	RedirectWithFlash(rec, req, "/contact", FlashContactSent)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/contact", loc.Path)
	assert.Equal(t, "contact-sent", loc.Query().Get("flash"))
}

func TestRedirectWithFlash_NoMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	RedirectWithFlash(rec, httptest.NewRequest(http.MethodPost, "/", nil), "", Flash("bogus"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRender_ServiceAnchors(t *testing.T) {
	rd := newTestRenderer(t)

	home := httptest.NewRecorder()
	rd.Render(home, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, PageHome, View{Data: Home()})
	services := httptest.NewRecorder()
	rd.Render(services, httptest.NewRequest(http.MethodGet, "/services", nil), http.StatusOK, PageServices, View{Data: Services()})

	for _, o := range Home().Services {
		anchor := slug.Generate(o.Title)
		assert.Contains(t, home.Body.String(), `href="/services#`+anchor+`"`)
		assert.Contains(t, services.Body.String(), `id="`+anchor+`"`, "home links to a missing section")
	}
}
