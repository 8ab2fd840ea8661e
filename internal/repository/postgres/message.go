package postgres

import (
	"context"
	"fmt"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/pkg/database"
	apperrors "github.com/raselahmedweb/innovensky/pkg/errors"
	"github.com/raselahmedweb/innovensky/pkg/pagination"
)

// MessageRepository implements repository.MessageRepository using PostgreSQL.
type MessageRepository struct {
	db database.DBTX
}

// NewMessageRepository creates a new PostgreSQL-backed contact message repository.
func NewMessageRepository(db database.DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a contact message.
func (r *MessageRepository) Create(ctx context.Context, m *domain.ContactMessage) (err error) {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ctx, end := database.TraceQuery(ctx, "CreateContactMessage", query)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, query,
		m.ID,
		m.Name,
		m.Email,
		m.Subject,
		m.Message,
		m.IsRead,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}

	return nil
}

// List returns a page of messages, newest first. The total is computed in
// the same query with a window count.
func (r *MessageRepository) List(ctx context.Context, filter domain.MessageFilter, page pagination.Params) (_ []domain.ContactMessage, _ int, err error) {
	query := `
		SELECT id, name, email, subject, message, is_read, created_at, COUNT(*) OVER() AS total_count
		FROM contact_messages
		WHERE ($1::boolean = false OR is_read = false)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	ctx, end := database.TraceQuery(ctx, "ListContactMessages", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, filter.UnreadOnly, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var (
		messages   = []domain.ContactMessage{}
		totalCount int
	)
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Email,
			&m.Subject,
			&m.Message,
			&m.IsRead,
			&m.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan contact message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contact message rows: %w", err)
	}

	return messages, totalCount, nil
}

// SetRead updates the read flag of a message and returns the updated row.
func (r *MessageRepository) SetRead(ctx context.Context, id string, read bool) (_ *domain.ContactMessage, err error) {
	query := `
		UPDATE contact_messages
		SET is_read = $1
		WHERE id = $2
		RETURNING id, name, email, subject, message, is_read, created_at`

	ctx, end := database.TraceQuery(ctx, "SetContactMessageRead", query)
	defer func() { end(err) }()

	var m domain.ContactMessage
	err = r.db.QueryRow(ctx, query, read, id).Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.Subject,
		&m.Message,
		&m.IsRead,
		&m.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("Message")
		}
		return nil, fmt.Errorf("update contact message: %w", err)
	}

	return &m, nil
}

// Delete removes a message by ID.
func (r *MessageRepository) Delete(ctx context.Context, id string) (err error) {
	query := `DELETE FROM contact_messages WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "DeleteContactMessage", query)
	defer func() { end(err) }()

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Message")
	}

	return nil
}
