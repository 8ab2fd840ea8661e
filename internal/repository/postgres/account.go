package postgres

import (
	"context"
	"fmt"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/pkg/database"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
)

// AccountRepository implements repository.AccountRepository using PostgreSQL.
type AccountRepository struct {
	db database.DBTX
}

// NewAccountRepository creates a new PostgreSQL-backed account repository.
func NewAccountRepository(db database.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByEmail retrieves an account by its email. The comparison is exact.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (_ *domain.Account, err error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM accounts
		WHERE email = $1`

	ctx, end := database.TraceQuery(ctx, "GetAccountByEmail", query)
	defer func() { end(err) }()

	var a domain.Account
	err = r.db.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Role,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("Account")
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	return &a, nil
}

// Upsert inserts the account, or updates hash, name and role when the email
// is already taken. The stored ID and timestamps are written back to a.
func (r *AccountRepository) Upsert(ctx context.Context, a *domain.Account) (err error) {
	query := `
		INSERT INTO accounts (id, email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    name = EXCLUDED.name,
		    role = EXCLUDED.role,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	ctx, end := database.TraceQuery(ctx, "UpsertAccount", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query,
		a.ID,
		a.Email,
		a.PasswordHash,
		a.Name,
		a.Role,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}

	return nil
}
