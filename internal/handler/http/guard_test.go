package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/web"
	"github.com/raselahmedweb/innovensky/pkg/httputil"
)

type guardFixture struct {
	gate    *auth.Gate
	now     time.Time
	handler http.Handler
	calls   int
	claims  auth.Claims
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	f := &guardFixture{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}

	gate, err := auth.NewGate(testSecret, time.Hour, auth.WithClock(func() time.Time { return f.now }))
	require.NoError(t, err)
	rd, err := web.NewRenderer(testLogger)
	require.NoError(t, err)
	f.gate = gate

	protected := func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		f.claims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(Guard(gate, testCookie, domain.RoleAdmin, rd))
		r.Get("/admin", protected)
		r.Get("/api/admin/stats", protected)
	})
	f.handler = r
	return f
}

func (f *guardFixture) issue(t *testing.T, role string) string {
	t.Helper()
	tok, err := f.gate.Issue(auth.Identity{ID: "acc-1", Identifier: "a@b.co", DisplayName: "A", Role: role})
	require.NoError(t, err)
	return tok.Value
}

func (f *guardFixture) get(target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *httputil.ErrorResponse {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestGuard_ValidSession_AdmitsAndStoresClaims(t *testing.T) {
	f := newGuardFixture(t)

	rr := f.get("/admin", f.issue(t, domain.RoleAdmin))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "acc-1", f.claims.Subject)
	assert.Equal(t, domain.RoleAdmin, f.claims.Role)
}

func TestGuard_ReusableToken(t *testing.T) {
	f := newGuardFixture(t)
	token := f.issue(t, domain.RoleAdmin)

	for range 3 {
		assert.Equal(t, http.StatusOK, f.get("/api/admin/stats", token).Code)
	}
	assert.Equal(t, 3, f.calls)
}

func TestGuard_BearerFallback(t *testing.T) {
	f := newGuardFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+f.issue(t, domain.RoleAdmin))
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGuard_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T, f *guardFixture) string
	}{
		{
			name:  "missing token",
			token: func(*testing.T, *guardFixture) string { return "" },
		},
		{
			name:  "garbage token",
			token: func(*testing.T, *guardFixture) string { return "not-a-jwt" },
		},
		{
			name: "tampered token",
			token: func(t *testing.T, f *guardFixture) string {
				tok := f.issue(t, domain.RoleAdmin)
				return tok[:len(tok)-2] + "xx"
			},
		},
		{
			name: "foreign secret",
			token: func(t *testing.T, f *guardFixture) string {
				other, err := auth.NewGate("a-completely-different-secret-value", time.Hour)
				require.NoError(t, err)
				tok, err := other.Issue(auth.Identity{ID: "acc-1", Role: domain.RoleAdmin})
				require.NoError(t, err)
				return tok.Value
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T, f *guardFixture) string {
				tok := f.issue(t, domain.RoleAdmin)
				f.now = f.now.Add(time.Hour)
				return tok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/page redirects to login", func(t *testing.T) {
			f := newGuardFixture(t)
			rr := f.get("/admin", tt.token(t, f))

			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, LoginPath, rr.Header().Get("Location"))
			assert.Zero(t, f.calls)
		})
		t.Run(tt.name+"/api is unauthorized", func(t *testing.T) {
			f := newGuardFixture(t)
			rr := f.get("/api/admin/stats", tt.token(t, f))

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			e := decodeError(t, rr)
			assert.Equal(t, "UNAUTHORIZED", e.Code)
			assert.Equal(t, "Unauthorized", e.Message)
			assert.Zero(t, f.calls)
		})
	}
}

func TestGuard_WrongRole(t *testing.T) {
	t.Run("page renders access denied", func(t *testing.T) {
		f := newGuardFixture(t)
		rr := f.get("/admin", f.issue(t, domain.RoleEditor))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "Access denied")
		assert.Empty(t, rr.Header().Get("Location"))
		assert.Zero(t, f.calls)
	})

	t.Run("api is forbidden", func(t *testing.T) {
		f := newGuardFixture(t)
		rr := f.get("/api/admin/stats", f.issue(t, domain.RoleEditor))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "FORBIDDEN", decodeError(t, rr).Code)
		assert.Zero(t, f.calls)
	})
}

func TestRouter_AdminRoutesAreGuarded(t *testing.T) {
	env := newTestEnv(t)

	pages := []string{"/admin", "/admin/anything", "/admin/projects/new"}
	for _, p := range pages {
		rr := env.do(httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusSeeOther, rr.Code, p)
		assert.Equal(t, LoginPath, rr.Header().Get("Location"), p)
	}

	apis := []struct{ method, target string }{
		{http.MethodGet, "/api/admin/session"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/projects"},
		{http.MethodPost, "/api/admin/projects"},
		{http.MethodPut, "/api/admin/projects/0b8f3a51-7c1e-4d0a-9a55-3f0d2b6c1e11"},
		{http.MethodDelete, "/api/admin/team/0b8f3a51-7c1e-4d0a-9a55-3f0d2b6c1e11"},
		{http.MethodGet, "/api/admin/messages"},
		{http.MethodPatch, "/api/admin/messages/0b8f3a51-7c1e-4d0a-9a55-3f0d2b6c1e11"},
	}
	for _, a := range apis {
		rr := env.do(httptest.NewRequest(a.method, a.target, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, a.method+" "+a.target)
	}

	env.projects.AssertNotCalled(t, "List")
	env.stats.AssertNotCalled(t, "Get")
}

func TestRouter_LoginPageIsPublic(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest(http.MethodGet, LoginPath, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestRouter_AdminPreflightSkipsGuard(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/api/admin/projects", "/api/admin/messages/0b8f3a51-7c1e-4d0a-9a55-3f0d2b6c1e11"} {
		req := httptest.NewRequest(http.MethodOptions, target, nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

		rr := env.do(req)

		assert.Equal(t, http.StatusNoContent, rr.Code, target)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"), target)
		assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"), target)
	}
}

func TestRouter_AdminRejectionCarriesCORSHeaders(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rr := env.do(req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PagesGetNoCORSHeaders(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rr := env.do(req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
