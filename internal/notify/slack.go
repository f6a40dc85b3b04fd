// Package notify delivers alert messages to a Slack-compatible incoming
// webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const webhookTimeout = 15 * time.Second

// SendError is returned when the webhook endpoint rejects a delivery.
type SendError struct {
	StatusCode int
}

func (e *SendError) Error() string {
	return fmt.Sprintf("notify: webhook returned status %d", e.StatusCode)
}

// Webhook posts messages to a single incoming-webhook URL.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a Webhook targeting the given URL.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: webhookTimeout},
	}
}

// payload is the Slack incoming-webhook message body.
type payload struct {
	Text string `json:"text"`
}

// Send delivers one message. A non-2xx response yields a *SendError.
func (w *Webhook) Send(ctx context.Context, message string) error {
	data, err := json.Marshal(payload{Text: message})
	if err != nil {
		return fmt.Errorf("notify: failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("notify: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SendError{StatusCode: resp.StatusCode}
	}
	return nil
}
