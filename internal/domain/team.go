package domain

import "time"

// TeamMember is a person listed on the about page.
type TeamMember struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Bio         string    `json:"bio"`
	ImageURL    string    `json:"image_url,omitempty"`
	LinkedInURL string    `json:"linkedin_url,omitempty"`
	GitHubURL   string    `json:"github_url,omitempty"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamMemberInput carries the writable fields of a team member.
type TeamMemberInput struct {
	Name        string `json:"name" validate:"notblank,max=120"`
	Role        string `json:"role" validate:"notblank,max=120"`
	Bio         string `json:"bio" validate:"notblank,max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	LinkedInURL string `json:"linkedin_url" validate:"omitempty,url"`
	GitHubURL   string `json:"github_url" validate:"omitempty,url"`
	OrderIndex  int    `json:"order_index" validate:"gte=0"`
}

func (TeamMemberInput) ValidationMessage() string { return "Name, role, and bio are required" }
