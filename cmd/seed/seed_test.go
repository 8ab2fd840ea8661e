package main

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/service"
)

type fakeAccounts struct {
	got []service.ProvisionInput
	err error
}

func (f *fakeAccounts) Provision(_ context.Context, in service.ProvisionInput) (*domain.Account, error) {
	f.got = append(f.got, in)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Account{ID: "acc-1", Email: in.Email, Role: in.Role}, nil
}

type fakeProjects struct{ created []string }

func (f *fakeProjects) Create(_ context.Context, in domain.ProjectInput) (*domain.Project, error) {
	f.created = append(f.created, in.Title)
	return &domain.Project{Title: in.Title}, nil
}

type fakeTeam struct{ created []string }

func (f *fakeTeam) Create(_ context.Context, in domain.TeamMemberInput) (*domain.TeamMember, error) {
	f.created = append(f.created, in.Name)
	return &domain.TeamMember{Name: in.Name}, nil
}

type fakeStats struct{ stats domain.Stats }

func (f *fakeStats) Get(context.Context) (*domain.Stats, error) {
	s := f.stats
	return &s, nil
}

func newTestSeeder(stats domain.Stats) (*seeder, *fakeAccounts, *fakeProjects, *fakeTeam) {
	a, p, tm := &fakeAccounts{}, &fakeProjects{}, &fakeTeam{}
	return &seeder{
		accounts: a,
		projects: p,
		team:     tm,
		stats:    &fakeStats{stats: stats},
		logger:   slog.New(slog.DiscardHandler),
	}, a, p, tm
}

func TestRun_ProvisionsAdmin(t *testing.T) {
	s, accounts, projects, team := newTestSeeder(domain.Stats{})

	err := s.run(context.Background(), seedConfig{
		AdminEmail:    "admin@innovensky.com",
		AdminPassword: "a-long-password",
		AdminName:     "Administrator",
		AdminRole:     domain.RoleAdmin,
	})

	require.NoError(t, err)
	require.Len(t, accounts.got, 1)
	assert.Equal(t, "admin@innovensky.com", accounts.got[0].Email)
	assert.Equal(t, domain.RoleAdmin, accounts.got[0].Role)
	assert.Empty(t, projects.created)
	assert.Empty(t, team.created)
}

func TestRun_SampleContentOnlyIntoEmptyTables(t *testing.T) {
	s, accounts, projects, team := newTestSeeder(domain.Stats{Projects: 4})

	require.NoError(t, s.run(context.Background(), seedConfig{SampleContent: true}))

	assert.Empty(t, accounts.got)
	assert.Empty(t, projects.created)
	assert.Len(t, team.created, len(sampleTeam))
}

func TestRun_NothingToDo(t *testing.T) {
	s, _, _, _ := newTestSeeder(domain.Stats{})

	assert.ErrorIs(t, s.run(context.Background(), seedConfig{}), errNothingToDo)
}

func TestRun_ProvisionError(t *testing.T) {
	s, accounts, _, _ := newTestSeeder(domain.Stats{})
	accounts.err = errors.New("password must be at least 8 characters")

	err := s.run(context.Background(), seedConfig{AdminEmail: "a@b.co", AdminPassword: "short"})

	assert.ErrorContains(t, err, "provision account")
}
