package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/raselahmedweb/innovensky/internal/domain"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
	"github.com/raselahmedweb/innovensky/pkg/tracing"
)

const tracerName = "github.com/raselahmedweb/innovensky/internal/auth"

// AccountReader is the read side of the account store the verifier needs.
type AccountReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// Identity is the verified caller, copied out of the account row.
type Identity struct {
	ID          string `json:"id"`
	Identifier  string `json:"email"`
	DisplayName string `json:"name"`
	Role        string `json:"role"`
}

// Verifier checks an email and password against stored accounts.
type Verifier struct {
	accounts AccountReader
	hasher   *Hasher
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewVerifier creates a Verifier backed by accounts.
func NewVerifier(accounts AccountReader, hasher *Hasher, logger *slog.Logger) *Verifier {
	if hasher == nil {
		hasher = NewHasher(DefaultCost)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Verifier{accounts: accounts, hasher: hasher, logger: logger}
}

// Verify returns the identity for a matching email and password.
//
// Unknown emails and wrong passwords both yield an error matching
// ErrInvalidCredentials with the same message. An unknown email still pays
// for one bcrypt comparison.
func (v *Verifier) Verify(ctx context.Context, identifier, secret string) (Identity, error) {
	if identifier == "" || secret == "" {
		loginAttempts.WithLabelValues("rejected").Inc()
		return Identity{}, ErrInvalidCredentials
	}

	ctx, span := tracing.Tracer(tracerName).Start(ctx, "auth.Verify")
	defer span.End()

	account, err := v.accounts.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			v.hasher.Compare(v.dummy(), secret)
			loginAttempts.WithLabelValues("unknown_identifier").Inc()
			span.SetAttributes(attribute.String("auth.result", "unknown_identifier"))
			return Identity{}, &credentialError{reason: ErrUnknownIdentifier}
		}
		loginAttempts.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "account lookup failed")
		return Identity{}, fmt.Errorf("look up account: %w", err)
	}

	if !v.hasher.Compare(account.PasswordHash, secret) {
		loginAttempts.WithLabelValues("invalid_secret").Inc()
		span.SetAttributes(attribute.String("auth.result", "invalid_secret"))
		return Identity{}, &credentialError{reason: ErrInvalidSecret}
	}

	loginAttempts.WithLabelValues("success").Inc()
	span.SetAttributes(attribute.String("auth.result", "success"))
	v.logger.InfoContext(ctx, "account verified",
		slog.String("account_id", account.ID),
		slog.String("role", account.Role),
	)

	return Identity{
		ID:          account.ID,
		Identifier:  account.Email,
		DisplayName: account.Name,
		Role:        account.Role,
	}, nil
}

// dummy is a valid hash at the verifier's cost, compared against when the
// account does not exist.
func (v *Verifier) dummy() string {
	v.dummyOnce.Do(func() {
		v.dummyHash, _ = v.hasher.Hash("innovensky-dummy-password")
	})
	return v.dummyHash
}
