package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/internal/web"
	"github.com/raselahmedweb/innovensky/pkg/health"
	"github.com/raselahmedweb/innovensky/pkg/middleware"
	"github.com/raselahmedweb/innovensky/pkg/pagination"
)

const (
	testSecret   = "test-session-secret-with-32-chars!!"
	testCookie   = "session"
	testPassword = "correct-horse-battery"
)

var testLogger = slog.New(slog.DiscardHandler)

// --- Mock Account Repository ---

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock Project Repository ---

type mockProjectRepository struct {
	mock.Mock
}

func (m *mockProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *mockProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Team Repository ---

type mockTeamRepository struct {
	mock.Mock
}

func (m *mockTeamRepository) ListOrdered(ctx context.Context) ([]domain.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *mockTeamRepository) ListRecent(ctx context.Context) ([]domain.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *mockTeamRepository) Create(ctx context.Context, member *domain.TeamMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockTeamRepository) Update(ctx context.Context, member *domain.TeamMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockTeamRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Message Repository ---

type mockMessageRepository struct {
	mock.Mock
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMessageRepository) List(ctx context.Context, filter domain.MessageFilter, page pagination.Params) ([]domain.ContactMessage, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ContactMessage), args.Int(1), args.Error(2)
}

func (m *mockMessageRepository) SetRead(ctx context.Context, id string, read bool) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id, read)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *mockMessageRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Stats Repository ---

type mockStatsRepository struct {
	mock.Mock
}

func (m *mockStatsRepository) Get(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

// --- Test environment ---

// testEnv is the full router over mocked repositories and real services.
type testEnv struct {
	router   http.Handler
	gate     *auth.Gate
	limiter  *MemoryLimiter
	renderer *web.Renderer

	accounts *mockAccountRepository
	projects *mockProjectRepository
	team     *mockTeamRepository
	messages *mockMessageRepository
	stats    *mockStatsRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLimiter(t, NewMemoryLimiter(100, time.Minute))
}

func newTestEnvWithLimiter(t *testing.T, limiter LoginLimiter) *testEnv {
	t.Helper()
	return newTestEnvBehindProxies(t, limiter, nil)
}

func newTestEnvBehindProxies(t *testing.T, limiter LoginLimiter, proxies *ProxyTrust) *testEnv {
	t.Helper()

	gate, err := auth.NewGate(testSecret, time.Hour)
	require.NoError(t, err)
	rd, err := web.NewRenderer(testLogger)
	require.NoError(t, err)

	env := &testEnv{
		gate:     gate,
		renderer: rd,
		accounts: new(mockAccountRepository),
		projects: new(mockProjectRepository),
		team:     new(mockTeamRepository),
		messages: new(mockMessageRepository),
		stats:    new(mockStatsRepository),
	}
	if ml, ok := limiter.(*MemoryLimiter); ok {
		env.limiter = ml
	}

	hasher := auth.NewHasher(bcrypt.MinCost)
	env.router = NewRouter(RouterDeps{
		AppName:    "innovensky-test",
		Projects:   service.NewProjectService(env.projects, testLogger),
		Team:       service.NewTeamService(env.team, testLogger),
		Messages:   service.NewMessageService(env.messages, nil, nil, testLogger),
		Stats:      service.NewStatsService(env.stats),
		Verifier:   auth.NewVerifier(env.accounts, hasher, testLogger),
		Gate:       gate,
		Limiter:    limiter,
		Proxies:    proxies,
		Cookie:     CookieConfig{Name: testCookie},
		Renderer:   rd,
		PageMaxAge: 300,
		Health:     health.NewHandler(),
		CORS:       middleware.DefaultCORSConfig([]string{"http://localhost:3000"}),
		Logger:     testLogger,
	})
	return env
}

// sessionCookie issues a session cookie for a caller with role.
func (e *testEnv) sessionCookie(t *testing.T, role string) *http.Cookie {
	t.Helper()
	tok, err := e.gate.Issue(auth.Identity{
		ID:          "0b8f3a51-7c1e-4d0a-9a55-3f0d2b6c1e11",
		Identifier:  "admin@innovensky.com",
		DisplayName: "Site Admin",
		Role:        role,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: testCookie, Value: tok.Value}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// adminJSON builds an authenticated JSON API request.
func (e *testEnv) adminJSON(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req := jsonRequest(method, target, body)
	req.AddCookie(e.sessionCookie(t, domain.RoleAdmin))
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
