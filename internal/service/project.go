package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/repository"
)

// ProjectService implements portfolio project operations.
type ProjectService struct {
	repo   repository.ProjectRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewProjectService creates a new project service.
func NewProjectService(repo repository.ProjectRepository, logger *slog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger, now: time.Now}
}

// Portfolio is the public portfolio split into featured and other projects.
type Portfolio struct {
	Featured []domain.Project
	Other    []domain.Project
}

// List returns all projects, featured first and then newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Portfolio returns the projects grouped for the portfolio page.
func (s *ProjectService) Portfolio(ctx context.Context) (*Portfolio, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	p := &Portfolio{Featured: []domain.Project{}, Other: []domain.Project{}}
	for _, proj := range projects {
		if proj.Featured {
			p.Featured = append(p.Featured, proj)
		} else {
			p.Other = append(p.Other, proj)
		}
	}
	return p, nil
}

// Create stores a new project built from in.
func (s *ProjectService) Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	now := s.now().UTC()
	p := &domain.Project{ID: uuid.New().String(), CreatedAt: now}
	applyProjectInput(p, in, now)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.InfoContext(ctx, "project created",
		slog.String("project_id", p.ID),
		slog.String("title", p.Title),
	)
	return p, nil
}

// Update replaces the writable fields of project id.
func (s *ProjectService) Update(ctx context.Context, id string, in domain.ProjectInput) (*domain.Project, error) {
	p := &domain.Project{ID: id}
	applyProjectInput(p, in, s.now().UTC())

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.logger.InfoContext(ctx, "project updated", slog.String("project_id", id))
	return p, nil
}

// Delete removes project id.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.logger.InfoContext(ctx, "project deleted", slog.String("project_id", id))
	return nil
}

func applyProjectInput(p *domain.Project, in domain.ProjectInput, now time.Time) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.ProjectURL = strings.TrimSpace(in.ProjectURL)
	p.Technologies = cleanList(in.Technologies)
	p.Featured = in.Featured
	p.UpdatedAt = now
}

// cleanList trims entries and drops empty ones. It never returns nil.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
