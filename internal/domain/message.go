package domain

import "time"

// ContactMessage is a visitor submission from the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactInput is the body of a contact submission.
type ContactInput struct {
	Name    string `json:"name" validate:"notblank,max=120"`
	Email   string `json:"email" validate:"notblank,email,max=254"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"notblank,max=10000"`
}

func (ContactInput) ValidationMessage() string { return "All fields are required" }

// MessageFilter narrows an admin message listing.
type MessageFilter struct {
	UnreadOnly bool
}
