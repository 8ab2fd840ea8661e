package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/pkg/pagination"
)

var (
	testLogger = slog.New(slog.DiscardHandler)
	fixedNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return fixedNow }

// --- Mock Project Repository ---

type mockProjectRepository struct {
	mock.Mock
}

func (m *mockProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *mockProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Team Repository ---

type mockTeamRepository struct {
	mock.Mock
}

func (m *mockTeamRepository) ListOrdered(ctx context.Context) ([]domain.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *mockTeamRepository) ListRecent(ctx context.Context) ([]domain.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *mockTeamRepository) Create(ctx context.Context, member *domain.TeamMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockTeamRepository) Update(ctx context.Context, member *domain.TeamMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockTeamRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Message Repository ---

type mockMessageRepository struct {
	mock.Mock
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMessageRepository) List(ctx context.Context, filter domain.MessageFilter, page pagination.Params) ([]domain.ContactMessage, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ContactMessage), args.Int(1), args.Error(2)
}

func (m *mockMessageRepository) SetRead(ctx context.Context, id string, read bool) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id, read)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactMessage), args.Error(1)
}

func (m *mockMessageRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// --- Mock Account Repository ---

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepository) Upsert(ctx context.Context, a *domain.Account) error {
	return m.Called(ctx, a).Error(0)
}

// --- Mock Stats Repository ---

type mockStatsRepository struct {
	mock.Mock
}

func (m *mockStatsRepository) Get(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

// --- Mock contact integrations ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishContactReceived(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyContact(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}
