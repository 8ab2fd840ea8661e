package middleware

import (
	"net/http"
	"strings"
)

// SessionToken returns the session token carried by r. The named cookie is
// checked first, then an "Authorization: Bearer" header for API clients.
func SessionToken(r *http.Request, cookieName string) (string, bool) {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	return BearerToken(r)
}

// BearerToken extracts the token from an Authorization header. The scheme
// is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
