package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/repository"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
)

// minPasswordLength is the shortest password provisioning accepts.
const minPasswordLength = 8

// ProvisionInput describes an account to create or reset.
type ProvisionInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// AccountService provisions admin accounts. The login path never writes
// accounts; only the seed tool uses this.
type AccountService struct {
	repo   repository.AccountRepository
	hasher *auth.Hasher
	logger *slog.Logger
	now    func() time.Time
}

// NewAccountService creates a new account service.
func NewAccountService(repo repository.AccountRepository, hasher *auth.Hasher, logger *slog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, logger: logger, now: time.Now}
}

// Provision creates the account or, when the email exists, replaces its
// password, name and role.
func (s *AccountService) Provision(ctx context.Context, in ProvisionInput) (*domain.Account, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	role := in.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	if !domain.IsValidRole(role) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("role must be one of %v", domain.ValidRoles()))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	a := &domain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, fmt.Errorf("provision account: %w", err)
	}

	s.logger.InfoContext(ctx, "account provisioned",
		slog.String("account_id", a.ID),
		slog.String("email", a.Email),
		slog.String("role", a.Role),
	)
	return a, nil
}
