package service

import (
	"context"
	"fmt"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/repository"
)

// StatsService reads dashboard counters.
type StatsService struct {
	repo repository.StatsRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(repo repository.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Get returns the current counters.
func (s *StatsService) Get(ctx context.Context) (*domain.Stats, error) {
	stats, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}
