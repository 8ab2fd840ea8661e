package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/web"
	"github.com/raselahmedweb/innovensky/pkg/httputil"
	"github.com/raselahmedweb/innovensky/pkg/logger"
	"github.com/raselahmedweb/innovensky/pkg/middleware"
)

// LoginPath is where rejected page requests are sent.
const LoginPath = "/admin/login"

type claimsKey struct{}

// ClaimsFromContext returns the claims stored by Guard.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return c, ok
}

func withClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// Guard admits requests carrying a valid session token whose role is
// requiredRole. Requests under /api/ get JSON errors; everything else is
// treated as a page: a missing or invalid session redirects to the login
// page and a wrong role renders an access-denied page.
func Guard(gate *auth.Gate, cookieName, requiredRole string, rd *web.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			api := strings.HasPrefix(r.URL.Path, "/api/")

			token, ok := middleware.SessionToken(r, cookieName)
			if !ok {
				reject(w, r, api, auth.ReasonMissing)
				return
			}

			claims, err := gate.Validate(token)
			if err != nil {
				reject(w, r, api, auth.RejectionReason(err))
				return
			}

			ctx := logger.WithAccountID(r.Context(), claims.Subject)
			ctx = logger.NewContext(ctx, logger.FromContext(ctx).With(slog.String("account_id", claims.Subject)))

			if !gate.Authorize(claims, requiredRole) {
				auth.ObserveRejection(auth.ReasonForbidden)
				logger.FromContext(ctx).WarnContext(ctx, "session rejected",
					slog.String("reason", auth.ReasonForbidden),
					slog.String("role", claims.Role),
					slog.String("path", r.URL.Path),
				)
				if api {
					httputil.WriteJSON(w, http.StatusForbidden, httputil.Response{
						Error: &httputil.ErrorResponse{Code: "FORBIDDEN", Message: "Forbidden"},
					})
					return
				}
				rd.RenderError(w, r.WithContext(ctx), http.StatusForbidden,
					"Access denied", "Your account does not have access to this area.")
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(ctx, claims)))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, api bool, reason string) {
	auth.ObserveRejection(reason)
	logger.FromContext(r.Context()).InfoContext(r.Context(), "session rejected",
		slog.String("reason", reason),
		slog.String("path", r.URL.Path),
	)
	if api {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "Unauthorized"},
		})
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}
