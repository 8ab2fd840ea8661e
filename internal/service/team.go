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

// TeamService implements team member operations.
type TeamService struct {
	repo   repository.TeamRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewTeamService creates a new team service.
func NewTeamService(repo repository.TeamRepository, logger *slog.Logger) *TeamService {
	return &TeamService{repo: repo, logger: logger, now: time.Now}
}

// ListPublic returns members in about-page order.
func (s *TeamService) ListPublic(ctx context.Context) ([]domain.TeamMember, error) {
	members, err := s.repo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return members, nil
}

// ListAdmin returns members newest first.
func (s *TeamService) ListAdmin(ctx context.Context) ([]domain.TeamMember, error) {
	members, err := s.repo.ListRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return members, nil
}

// Create stores a new team member.
func (s *TeamService) Create(ctx context.Context, in domain.TeamMemberInput) (*domain.TeamMember, error) {
	now := s.now().UTC()
	m := &domain.TeamMember{ID: uuid.New().String(), CreatedAt: now}
	applyTeamInput(m, in, now)

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}

	s.logger.InfoContext(ctx, "team member created",
		slog.String("member_id", m.ID),
		slog.String("name", m.Name),
	)
	return m, nil
}

// Update replaces the writable fields of member id.
func (s *TeamService) Update(ctx context.Context, id string, in domain.TeamMemberInput) (*domain.TeamMember, error) {
	m := &domain.TeamMember{ID: id}
	applyTeamInput(m, in, s.now().UTC())

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update team member: %w", err)
	}

	s.logger.InfoContext(ctx, "team member updated", slog.String("member_id", id))
	return m, nil
}

// Delete removes member id.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}

	s.logger.InfoContext(ctx, "team member deleted", slog.String("member_id", id))
	return nil
}

func applyTeamInput(m *domain.TeamMember, in domain.TeamMemberInput, now time.Time) {
	m.Name = strings.TrimSpace(in.Name)
	m.Role = strings.TrimSpace(in.Role)
	m.Bio = strings.TrimSpace(in.Bio)
	m.ImageURL = strings.TrimSpace(in.ImageURL)
	m.LinkedInURL = strings.TrimSpace(in.LinkedInURL)
	m.GitHubURL = strings.TrimSpace(in.GitHubURL)
	m.OrderIndex = in.OrderIndex
	m.UpdatedAt = now
}
