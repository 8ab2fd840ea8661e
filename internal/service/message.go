package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/internal/repository"
	"github.com/raselahmedweb/innovensky/pkg/pagination"
)

// ContactPublisher announces new contact messages on the event bus.
type ContactPublisher interface {
	PublishContactReceived(ctx context.Context, msg *domain.ContactMessage) error
}

// ContactNotifier forwards new contact messages to an outside channel.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg *domain.ContactMessage) error
}

// deliveryTimeout bounds the background publish and webhook call of one
// submission.
const deliveryTimeout = 10 * time.Second

// MessageService handles contact submissions and their admin management.
type MessageService struct {
	repo       repository.MessageRepository
	publisher  ContactPublisher
	notifier   ContactNotifier
	logger     *slog.Logger
	now        func() time.Time
	deliveries sync.WaitGroup
}

// NewMessageService creates a message service. publisher and notifier may
// be nil when the corresponding integration is not configured.
func NewMessageService(
	repo repository.MessageRepository,
	publisher ContactPublisher,
	notifier ContactNotifier,
	logger *slog.Logger,
) *MessageService {
	return &MessageService{
		repo:      repo,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit stores a contact message. Publishing and webhook delivery start
// after the insert, run in the background under their own deadline and
// never fail or delay the submission.
func (s *MessageService) Submit(ctx context.Context, in domain.ContactInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("save contact message: %w", err)
	}

	s.logger.InfoContext(ctx, "contact message received", slog.String("message_id", msg.ID))

	if s.publisher != nil || s.notifier != nil {
		s.deliveries.Add(1)
		go s.deliver(context.WithoutCancel(ctx), msg)
	}

	return msg, nil
}

func (s *MessageService) deliver(ctx context.Context, msg *domain.ContactMessage) {
	defer s.deliveries.Done()
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	if s.publisher != nil {
		if err := s.publisher.PublishContactReceived(ctx, msg); err != nil {
			s.logger.WarnContext(ctx, "failed to publish contact event",
				slog.String("message_id", msg.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, msg); err != nil {
			s.logger.WarnContext(ctx, "failed to notify contact webhook",
				slog.String("message_id", msg.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Wait blocks until background deliveries have finished or ctx is done.
func (s *MessageService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.deliveries.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// List returns one page of messages, newest first.
func (s *MessageService) List(ctx context.Context, filter domain.MessageFilter, page pagination.Params) (pagination.Result[domain.ContactMessage], error) {
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return pagination.Result[domain.ContactMessage]{}, fmt.Errorf("list contact messages: %w", err)
	}
	return pagination.NewResult(items, total, page), nil
}

// MarkRead sets the read flag of message id.
func (s *MessageService) MarkRead(ctx context.Context, id string, read bool) (*domain.ContactMessage, error) {
	msg, err := s.repo.SetRead(ctx, id, read)
	if err != nil {
		return nil, fmt.Errorf("mark contact message: %w", err)
	}
	return msg, nil
}

// Delete removes message id.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	s.logger.InfoContext(ctx, "contact message deleted", slog.String("message_id", id))
	return nil
}
