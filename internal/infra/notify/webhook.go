package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkondo/taskping/internal/domain"
)

const webhookTimeout = 10 * time.Second

// Webhook posts notifications to a chat-transport endpoint as JSON. Each
// delivery carries a unique ID so the receiving transport can deduplicate
// retried posts.
type Webhook struct {
	client *http.Client
	url    string
}

type webhookPayload struct {
	DeliveryID string `json:"deliveryID"`
	OwnerID    string `json:"ownerID"`
	Text       string `json:"text"`
}

// NewWebhook creates a webhook notifier for the given endpoint.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: webhookTimeout},
	}
}

// Send posts the message. Non-2xx responses are reported as errors; the
// caller logs and moves on.
func (w *Webhook) Send(ctx context.Context, ownerID, text string) error {
	payload := webhookPayload{
		DeliveryID: uuid.NewString(),
		OwnerID:    ownerID,
		Text:       text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification endpoint returned %s", resp.Status)
	}
	return nil
}

// Ensure Webhook implements Notifier.
var _ domain.Notifier = (*Webhook)(nil)
