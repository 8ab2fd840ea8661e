package domain

import "time"

// Project is a portfolio entry.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url,omitempty"`
	ProjectURL   string    `json:"project_url,omitempty"`
	Technologies []string  `json:"technologies"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectInput carries the writable fields of a project.
type ProjectInput struct {
	Title        string   `json:"title" validate:"notblank,max=200"`
	Description  string   `json:"description" validate:"max=5000"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
	ProjectURL   string   `json:"project_url" validate:"omitempty,url"`
	Technologies []string `json:"technologies" validate:"max=30,dive,notblank,max=50"`
	Featured     bool     `json:"featured"`
}

func (ProjectInput) ValidationMessage() string { return "Title is required" }
