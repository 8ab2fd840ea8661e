package postgres

import (
	"context"
	"fmt"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/pkg/database"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
)

// ProjectRepository implements repository.ProjectRepository using PostgreSQL.
type ProjectRepository struct {
	db database.DBTX
}

// NewProjectRepository creates a new PostgreSQL-backed project repository.
func NewProjectRepository(db database.DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns all projects, featured first and then newest first.
func (r *ProjectRepository) List(ctx context.Context) (_ []domain.Project, err error) {
	query := `
		SELECT id, title, description, image_url, project_url, technologies, featured, created_at, updated_at
		FROM projects
		ORDER BY featured DESC, created_at DESC`

	ctx, end := database.TraceQuery(ctx, "ListProjects", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.ImageURL,
			&p.ProjectURL,
			&p.Technologies,
			&p.Featured,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}

	return projects, nil
}

// Create inserts a new project.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (err error) {
	query := `
		INSERT INTO projects (id, title, description, image_url, project_url, technologies, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	ctx, end := database.TraceQuery(ctx, "CreateProject", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.ImageURL,
		p.ProjectURL,
		p.Technologies,
		p.Featured,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("Project", "id", p.ID)
		}
		return fmt.Errorf("insert project: %w", err)
	}

	return nil
}

// Update replaces the writable fields of an existing project and reads back
// its creation time.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (err error) {
	query := `
		UPDATE projects
		SET title = $1, description = $2, image_url = $3, project_url = $4,
		    technologies = $5, featured = $6, updated_at = $7
		WHERE id = $8
		RETURNING created_at`

	ctx, end := database.TraceQuery(ctx, "UpdateProject", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query,
		p.Title,
		p.Description,
		p.ImageURL,
		p.ProjectURL,
		p.Technologies,
		p.Featured,
		p.UpdatedAt,
		p.ID,
	).Scan(&p.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return apperrors.NotFound("Project")
		}
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

// Delete removes a project by ID.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (err error) {
	query := `DELETE FROM projects WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteProject", query)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Project")
	}

	return nil
}
