package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/raselahmedweb/innovensky/internal/domain"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
)

func newTestProjectService() (*ProjectService, *mockProjectRepository) {
	repo := new(mockProjectRepository)
	svc := NewProjectService(repo, testLogger)
	svc.now = fixedClock
	return svc, repo
}

func TestProjectService_Portfolio_SplitsFeatured(t *testing.T) {
	svc, repo := newTestProjectService()
	repo.On("List", mock.Anything).Return([]domain.Project{
		{ID: "1", Title: "A", Featured: true},
		{ID: "2", Title: "B", Featured: true},
		{ID: "3", Title: "C"},
	}, nil)

	p, err := svc.Portfolio(context.Background())

	require.NoError(t, err)
	assert.Len(t, p.Featured, 2)
	assert.Equal(t, "1", p.Featured[0].ID)
	require.Len(t, p.Other, 1)
	assert.Equal(t, "3", p.Other[0].ID)
}

func TestProjectService_Portfolio_Empty(t *testing.T) {
	svc, repo := newTestProjectService()
	repo.On("List", mock.Anything).Return([]domain.Project{}, nil)

	p, err := svc.Portfolio(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, p.Featured)
	assert.NotNil(t, p.Other)
}

func TestProjectService_List_Error(t *testing.T) {
	svc, repo := newTestProjectService()
	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.List(context.Background())

	assert.ErrorContains(t, err, "db down")
}

func TestProjectService_Create(t *testing.T) {
	svc, repo := newTestProjectService()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).Return(nil)

	p, err := svc.Create(context.Background(), domain.ProjectInput{
		Title:        "  Fleet tracker ",
		Technologies: []string{"Go", " ", " PostgreSQL "},
		Featured:     true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Fleet tracker", p.Title)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, p.Technologies)
	assert.True(t, p.Featured)
	assert.Equal(t, fixedNow, p.CreatedAt)
	assert.Equal(t, fixedNow, p.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestProjectService_Update_NotFound(t *testing.T) {
	svc, repo := newTestProjectService()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Project) bool {
		return p.ID == "missing" && p.Title == "New"
	})).Return(apperrors.NotFound("Project"))

	_, err := svc.Update(context.Background(), "missing", domain.ProjectInput{Title: "New"})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProjectService_Delete(t *testing.T) {
	svc, repo := newTestProjectService()
	repo.On("Delete", mock.Anything, "p-1").Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "p-1"))
	repo.AssertExpectations(t)
}
