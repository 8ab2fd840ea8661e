package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/web"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
	"github.com/raselahmedweb/innovensky/pkg/httputil"
	"github.com/raselahmedweb/innovensky/pkg/logger"
	"github.com/raselahmedweb/innovensky/pkg/middleware"
	"github.com/raselahmedweb/innovensky/pkg/validator"
)

const (
	msgInvalidLogin    = "Invalid email or password"
	msgTooManyAttempts = "Too many login attempts. Please try again later."
	msgSignedOut       = "You have been signed out"
)

// CredentialVerifier checks an email and password.
type CredentialVerifier interface {
	Verify(ctx context.Context, identifier, secret string) (auth.Identity, error)
}

// AuthHandler serves sign-in and sign-out for both the login form and the
// JSON API.
type AuthHandler struct {
	verifier CredentialVerifier
	gate     *auth.Gate
	limiter  LoginLimiter
	proxies  *ProxyTrust
	cookie   CookieConfig
	renderer *web.Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(
	verifier CredentialVerifier,
	gate *auth.Gate,
	limiter LoginLimiter,
	proxies *ProxyTrust,
	cookie CookieConfig,
	renderer *web.Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		gate:     gate,
		limiter:  limiter,
		proxies:  proxies,
		cookie:   cookie,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

// LoginRequest is the JSON request body for sign-in. Empty fields are
// rejected by the verifier as invalid credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful API sign-in.
type LoginResponse struct {
	Account   auth.Identity `json:"account"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// LoginPage handles GET /admin/login.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.SessionToken(r, h.cookie.Name); ok {
		if _, err := h.gate.Validate(token); err == nil {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
	}
	h.renderLogin(w, r, http.StatusOK, "", "")
}

// LoginForm handles POST /admin/login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, validator.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "", "Invalid form submission")
		return
	}
	email := r.PostFormValue("email")

	if !h.allow(r) {
		h.renderLogin(w, r, http.StatusTooManyRequests, email, msgTooManyAttempts)
		return
	}

	_, tok, err := h.signIn(r, email, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.renderLogin(w, r, http.StatusUnauthorized, email, msgInvalidLogin)
			return
		}
		h.log(r).ErrorContext(r.Context(), "sign-in failed", slog.String("error", err.Error()))
		h.renderLogin(w, r, http.StatusInternalServerError, email, "Something went wrong. Please try again.")
		return
	}

	h.cookie.set(w, tok, h.now())
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if !h.allow(r) {
		httputil.WriteError(w, r, apperrors.TooManyRequests(msgTooManyAttempts), h.logger)
		return
	}

	identity, tok, err := h.signIn(r, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httputil.WriteError(w, r, apperrors.Unauthorized(msgInvalidLogin), h.logger)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.cookie.set(w, tok, h.now())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: LoginResponse{Account: identity, ExpiresAt: tok.ExpiresAt},
	})
}

// LogoutForm handles POST /admin/logout.
func (h *AuthHandler) LogoutForm(w http.ResponseWriter, r *http.Request) {
	h.cookie.clear(w)
	web.RedirectWithFlash(w, r, LoginPath, web.FlashSignedOut)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookie.clear(w)
	httputil.WriteMessage(w, msgSignedOut)
}

// Session handles GET /api/admin/session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: claims})
}

// signIn verifies the credentials and issues a session token.
func (h *AuthHandler) signIn(r *http.Request, email, password string) (auth.Identity, auth.Token, error) {
	ctx := r.Context()
	identity, err := h.verifier.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.log(r).InfoContext(ctx, "login rejected",
				slog.Bool("unknown_identifier", errors.Is(err, auth.ErrUnknownIdentifier)),
			)
		}
		return auth.Identity{}, auth.Token{}, err
	}

	tok, err := h.gate.Issue(identity)
	if err != nil {
		return auth.Identity{}, auth.Token{}, err
	}
	return identity, tok, nil
}

// allow consults the limiter. A limiter outage lets the attempt through.
func (h *AuthHandler) allow(r *http.Request) bool {
	ok, err := h.limiter.Allow(r.Context(), h.proxies.LoginKey(r))
	if err != nil {
		h.log(r).WarnContext(r.Context(), "login rate limiter unavailable", slog.String("error", err.Error()))
		return true
	}
	if !ok {
		h.log(r).WarnContext(r.Context(), "login rate limit exceeded", slog.String("ip", h.proxies.ClientIP(r)))
	}
	return ok
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, email, flash string) {
	h.renderer.Render(w, r, status, web.PageLogin, web.View{
		Title: "Admin sign in",
		Flash: flash,
		Data:  web.LoginData{Email: email},
	})
}

func (h *AuthHandler) log(r *http.Request) *slog.Logger {
	if l := logger.FromContext(r.Context()); l != slog.Default() {
		return l
	}
	return h.logger
}
