package http

import (
	"net/http"
	"time"

	"github.com/raselahmedweb/innovensky/internal/auth"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

func (c CookieConfig) set(w http.ResponseWriter, tok auth.Token, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    tok.Value,
		Path:     "/",
		Expires:  tok.ExpiresAt,
		MaxAge:   int(tok.ExpiresAt.Sub(now).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
