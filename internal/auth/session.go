package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultIssuer is the iss claim on every session token.
const DefaultIssuer = "innovensky"

// Claims is the validated content of a session token. It is passed by value
// and never mutated after Validate returns it.
type Claims struct {
	Subject     string    `json:"sub"`
	Identifier  string    `json:"email"`
	DisplayName string    `json:"name"`
	Role        string    `json:"role"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Token is a signed session token and the moment it stops being valid.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Gate issues and validates HS256 session tokens.
type Gate struct {
	secret   []byte
	lifetime time.Duration
	issuer   string
	now      func() time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

// WithIssuer overrides DefaultIssuer.
func WithIssuer(issuer string) GateOption {
	return func(g *Gate) { g.issuer = issuer }
}

// NewGate returns a Gate signing with secret. An empty secret yields
// ErrConfigurationMissing.
func NewGate(secret string, lifetime time.Duration, opts ...GateOption) (*Gate, error) {
	if secret == "" {
		return nil, ErrConfigurationMissing
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("session lifetime must be positive, got %s", lifetime)
	}
	g := &Gate{
		secret:   []byte(secret),
		lifetime: lifetime,
		issuer:   DefaultIssuer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Lifetime returns how long issued tokens stay valid.
func (g *Gate) Lifetime() time.Duration { return g.lifetime }

// Issue signs a token for id that expires one lifetime from now.
func (g *Gate) Issue(id Identity) (Token, error) {
	now := g.now().UTC().Truncate(time.Second)
	exp := now.Add(g.lifetime)
	claims := &tokenClaims{
		Email: id.Identifier,
		Name:  id.DisplayName,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign session token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// Validate checks the token's signature and expiry. Any parse or signature
// failure is ErrBadSignature; a token at or past its expiry is ErrExpired.
func (g *Gate) Validate(token string) (Claims, error) {
	parsed := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, parsed, func(*jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(g.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		return Claims{}, fmt.Errorf("%w: %w", ErrBadSignature, err)
	}

	// Enforced here without leeway: now == exp is expired.
	exp := parsed.ExpiresAt.Time
	if !g.now().Before(exp) {
		return Claims{}, ErrExpired
	}

	c := Claims{
		Subject:     parsed.Subject,
		Identifier:  parsed.Email,
		DisplayName: parsed.Name,
		Role:        parsed.Role,
		ExpiresAt:   exp,
	}
	if parsed.IssuedAt != nil {
		c.IssuedAt = parsed.IssuedAt.Time
	}
	return c, nil
}

// Authorize reports whether claims carry exactly the required role.
func (g *Gate) Authorize(claims Claims, requiredRole string) bool {
	return requiredRole != "" && claims.Role == requiredRole
}
