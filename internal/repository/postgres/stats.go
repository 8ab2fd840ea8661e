package postgres

import (
	"context"
	"fmt"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/pkg/database"
)

// StatsRepository implements repository.StatsRepository using PostgreSQL.
type StatsRepository struct {
	db database.DBTX
}

// NewStatsRepository creates a new PostgreSQL-backed stats repository.
func NewStatsRepository(db database.DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get reads all four dashboard counters in one round trip.
func (r *StatsRepository) Get(ctx context.Context) (_ *domain.Stats, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM team_members),
			(SELECT COUNT(*) FROM contact_messages),
			(SELECT COUNT(*) FROM contact_messages WHERE is_read = false)`

	ctx, end := database.TraceQuery(ctx, "GetStats", query)
	defer func() { end(err) }()

	var s domain.Stats
	err = r.db.QueryRow(ctx, query).Scan(
		&s.Projects,
		&s.TeamMembers,
		&s.Messages,
		&s.UnreadMessages,
	)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	return &s, nil
}
