package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raselahmedweb/innovensky/internal/domain"
	pkgkafka "github.com/raselahmedweb/innovensky/pkg/kafka"
	"github.com/raselahmedweb/innovensky/pkg/logger"
)

// EventContactReceived is the event type of a new contact submission.
const EventContactReceived = "contact.message.received"

// AggregateTypeContactMessage is the aggregate type of contact events.
const AggregateTypeContactMessage = "contact_message"

// SourceWebsite identifies events published by the site.
const SourceWebsite = "innovensky-web"

// ContactReceivedData is the payload for a contact.message.received event.
type ContactReceivedData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Publisher is the subset of the Kafka producer used here.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes site events to Kafka.
type Producer struct {
	kafka  Publisher
	topic  string
	logger *slog.Logger
}

// NewProducer creates a producer that publishes contact events to topic.
func NewProducer(kafka Publisher, topic string, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		topic:  topic,
		logger: logger,
	}
}

// PublishContactReceived publishes a contact.message.received event.
func (p *Producer) PublishContactReceived(ctx context.Context, msg *domain.ContactMessage) error {
	data := ContactReceivedData{
		ID:      msg.ID,
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Message: msg.Message,
	}

	event, err := pkgkafka.NewEvent(EventContactReceived, msg.ID, AggregateTypeContactMessage, SourceWebsite, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", EventContactReceived, err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, p.topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", EventContactReceived, err)
	}

	p.logger.DebugContext(ctx, "published contact.message.received event",
		slog.String("message_id", msg.ID),
	)

	return nil
}
