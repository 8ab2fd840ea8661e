// Package notify forwards new contact submissions to an outbound webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/raselahmedweb/innovensky/internal/domain"
	"github.com/raselahmedweb/innovensky/pkg/httpclient"
)

// Poster sends a request body to a URL. *httpclient.CircuitBreakerClient
// satisfies it.
type Poster interface {
	Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error)
}

// Payload is the JSON document posted for each message. Text makes it
// readable by chat webhooks that only render that field.
type Payload struct {
	Text    string                 `json:"text"`
	Message *domain.ContactMessage `json:"message"`
}

// Webhook posts contact messages to a fixed URL.
type Webhook struct {
	client Poster
	url    string
	logger *slog.Logger
}

// NewWebhook returns a notifier for url.
func NewWebhook(client Poster, url string, logger *slog.Logger) *Webhook {
	return &Webhook{client: client, url: url, logger: logger}
}

// NewCircuitBreakerWebhook wires a Webhook to a retrying, circuit-broken
// HTTP client.
func NewCircuitBreakerWebhook(url string, logger *slog.Logger) *Webhook {
	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("contact-webhook"),
		logger,
	)
	return NewWebhook(client, url, logger)
}

// NotifyContact posts msg to the webhook. Any non-2xx reply is an error.
func (w *Webhook) NotifyContact(ctx context.Context, msg *domain.ContactMessage) error {
	body, err := json.Marshal(Payload{
		Text:    fmt.Sprintf("New contact message from %s <%s>", msg.Name, msg.Email),
		Message: msg,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	resp, err := w.client.Post(ctx, w.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post contact webhook: %w", err)
	}
	if err := httpclient.CheckResponse(resp); err != nil {
		return fmt.Errorf("contact webhook: %w", err)
	}

	w.logger.DebugContext(ctx, "contact webhook delivered", slog.String("message_id", msg.ID))
	return nil
}

// Close releases idle connections held by the client, if it pools any.
func (w *Webhook) Close() {
	if c, ok := w.client.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}
