package postgres

import (
	"context"
	"fmt"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/pkg/database"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
)

const teamColumns = `id, name, role, bio, image_url, linkedin_url, github_url, order_index, created_at, updated_at`

// TeamRepository implements repository.TeamRepository using PostgreSQL.
type TeamRepository struct {
	db database.DBTX
}

// NewTeamRepository creates a new PostgreSQL-backed team repository.
func NewTeamRepository(db database.DBTX) *TeamRepository {
	return &TeamRepository{db: db}
}

// ListOrdered returns members by order_index, ties broken by creation time.
func (r *TeamRepository) ListOrdered(ctx context.Context) ([]domain.TeamMember, error) {
	return r.list(ctx, "ListTeamOrdered",
		`SELECT `+teamColumns+` FROM team_members ORDER BY order_index ASC, created_at ASC`)
}

// ListRecent returns members newest first.
func (r *TeamRepository) ListRecent(ctx context.Context) ([]domain.TeamMember, error) {
	return r.list(ctx, "ListTeamRecent",
		`SELECT `+teamColumns+` FROM team_members ORDER BY created_at DESC`)
}

func (r *TeamRepository) list(ctx context.Context, op, query string) (_ []domain.TeamMember, err error) {
	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	members := []domain.TeamMember{}
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Role,
			&m.Bio,
			&m.ImageURL,
			&m.LinkedInURL,
			&m.GitHubURL,
			&m.OrderIndex,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan team member row: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team member rows: %w", err)
	}

	return members, nil
}

// Create inserts a new team member.
func (r *TeamRepository) Create(ctx context.Context, m *domain.TeamMember) (err error) {
	query := `
		INSERT INTO team_members (` + teamColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	ctx, end := database.TraceQuery(ctx, "CreateTeamMember", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query,
		m.ID,
		m.Name,
		m.Role,
		m.Bio,
		m.ImageURL,
		m.LinkedInURL,
		m.GitHubURL,
		m.OrderIndex,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("Team member", "id", m.ID)
		}
		return fmt.Errorf("insert team member: %w", err)
	}

	return nil
}

// Update replaces the writable fields of an existing member and reads back
// its creation time.
func (r *TeamRepository) Update(ctx context.Context, m *domain.TeamMember) (err error) {
	query := `
		UPDATE team_members
		SET name = $1, role = $2, bio = $3, image_url = $4, linkedin_url = $5,
		    github_url = $6, order_index = $7, updated_at = $8
		WHERE id = $9
		RETURNING created_at`

	ctx, end := database.TraceQuery(ctx, "UpdateTeamMember", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query,
		m.Name,
		m.Role,
		m.Bio,
		m.ImageURL,
		m.LinkedInURL,
		m.GitHubURL,
		m.OrderIndex,
		m.UpdatedAt,
		m.ID,
	).Scan(&m.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return apperrors.NotFound("Team member")
		}
		return fmt.Errorf("update team member: %w", err)
	}

	return nil
}

// Delete removes a team member by ID.
func (r *TeamRepository) Delete(ctx context.Context, id string) (err error) {
	query := `DELETE FROM team_members WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteTeamMember", query)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Team member")
	}

	return nil
}
