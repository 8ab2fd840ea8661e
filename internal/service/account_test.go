package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/domain"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
)

func newTestAccountService() (*AccountService, *mockAccountRepository, *auth.Hasher) {
	repo := new(mockAccountRepository)
	hasher := auth.NewHasher(bcrypt.MinCost)
	svc := NewAccountService(repo, hasher, testLogger)
	svc.now = fixedClock
	return svc, repo, hasher
}

func TestAccountService_Provision(t *testing.T) {
	svc, repo, hasher := newTestAccountService()
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Account")).Return(nil)

	a, err := svc.Provision(context.Background(), ProvisionInput{
		Email: "admin@innovensky.com", Password: "long-enough", Name: "Admin",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, a.Role, "role defaults to admin")
	assert.NotEqual(t, "long-enough", a.PasswordHash)
	assert.True(t, hasher.Compare(a.PasswordHash, "long-enough"))
	assert.Equal(t, fixedNow, a.CreatedAt)
}

func TestAccountService_Provision_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   ProvisionInput
	}{
		{"missing email", ProvisionInput{Password: "long-enough"}},
		{"short password", ProvisionInput{Email: "a@b.c", Password: "short"}},
		{"unknown role", ProvisionInput{Email: "a@b.c", Password: "long-enough", Role: "owner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestAccountService()

			_, err := svc.Provision(context.Background(), tt.in)

			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestStatsService_Get(t *testing.T) {
	repo := new(mockStatsRepository)
	svc := NewStatsService(repo)
	repo.On("Get", mock.Anything).Return(&domain.Stats{Projects: 1, UnreadMessages: 2}, nil)

	s, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, s.UnreadMessages)
}
