package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raselahmedweb/innovensky/pkg/validator"
)

func TestValidRoles_ContainsAll(t *testing.T) {
	assert.ElementsMatch(t, []string{RoleAdmin, RoleEditor}, ValidRoles())
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleEditor))
	assert.False(t, IsValidRole(""))
	assert.False(t, IsValidRole("ADMIN"))
	assert.False(t, IsValidRole("superadmin"))
}

func TestAccount_PasswordHashExcludedFromJSON(t *testing.T) {
	a := Account{ID: "a1", Email: "admin@innovensky.com", PasswordHash: "$2a$12$secret", Role: RoleAdmin}

	data, err := json.Marshal(a)

	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "$2a$12$secret")
}

func TestProjectInput_Validation(t *testing.T) {
	err := validator.Validate(&ProjectInput{Title: "   "})
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Title is required", ve.Summary())

	err = validator.Validate(&ProjectInput{Title: "Real title", ImageURL: "not a url"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "image_url must be a valid URL", ve.Summary())
	assert.Equal(t, map[string]string{"image_url": "must be a valid URL"}, ve.Fields())

	assert.NoError(t, validator.Validate(&ProjectInput{
		Title:        "Fleet tracker",
		ProjectURL:   "https://example.com",
		Technologies: []string{"Go", "PostgreSQL"},
	}))
}

func TestTeamMemberInput_Validation(t *testing.T) {
	err := validator.Validate(&TeamMemberInput{Name: "Ana", Role: "CTO"})
	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Name, role, and bio are required", ve.Summary())
	assert.Contains(t, ve.Fields(), "bio")
}

func TestContactInput_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input ContactInput
		want  string
	}{
		{"complete", ContactInput{Name: "Sam", Email: "sam@example.com", Message: "Hello"}, ""},
		{"subject optional", ContactInput{Name: "Sam", Email: "sam@example.com", Subject: "Quote", Message: "Hi"}, ""},
		{"missing name", ContactInput{Email: "sam@example.com", Message: "Hello"}, "All fields are required"},
		{"missing message", ContactInput{Name: "Sam", Email: "sam@example.com"}, "All fields are required"},
		{"bad email", ContactInput{Name: "Sam", Email: "sam", Message: "Hello"}, "email must be a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(&tt.input)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var ve *validator.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.want, ve.Summary())
		})
	}
}
