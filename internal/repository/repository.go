package repository

import (
	"context"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/pkg/pagination"
)

// AccountRepository defines the persistence operations for admin accounts.
type AccountRepository interface {
	// GetByEmail retrieves an account by exact, case-sensitive email match.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// Upsert creates the account or replaces the hash, name and role of the
	// account with the same email. Used only by provisioning.
	Upsert(ctx context.Context, account *domain.Account) error
}

// ProjectRepository defines the persistence operations for portfolio projects.
type ProjectRepository interface {
	// List returns every project, featured first, newest first.
	List(ctx context.Context) ([]domain.Project, error)

	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// TeamRepository defines the persistence operations for team members.
type TeamRepository interface {
	// ListOrdered returns members in display order for the about page.
	ListOrdered(ctx context.Context) ([]domain.TeamMember, error)

	// ListRecent returns members newest first for the admin area.
	ListRecent(ctx context.Context) ([]domain.TeamMember, error)

	Create(ctx context.Context, member *domain.TeamMember) error
	Update(ctx context.Context, member *domain.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// MessageRepository defines the persistence operations for contact messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error

	// List returns one page of messages, newest first, and the total count
	// matching the filter.
	List(ctx context.Context, filter domain.MessageFilter, page pagination.Params) ([]domain.ContactMessage, int, error)

	// SetRead updates the read flag and returns the updated message.
	SetRead(ctx context.Context, id string, read bool) (*domain.ContactMessage, error)

	Delete(ctx context.Context, id string) error
}

// StatsRepository reads the dashboard counters.
type StatsRepository interface {
	Get(ctx context.Context) (*domain.Stats, error)
}
