// Package domain holds the entities shared by the site and the admin area.
package domain

import "time"

// Account is an admin-area login. Accounts are provisioned by cmd/seed.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
