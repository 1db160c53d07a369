package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// WebhookNotifier posts messages to a Slack, Discord or generic JSON webhook.
type WebhookNotifier struct {
	kind   string
	url    string
	client *http.Client
}

var _ Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier creates a notifier for kind slack, discord or json.
func NewWebhookNotifier(kind, webhookURL string) *WebhookNotifier {
	return &WebhookNotifier{
		kind:   kind,
		url:    webhookURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func webhookPayload(kind, message string) (map[string]string, error) {
	switch kind {
	case "slack":
		return map[string]string{"text": message}, nil
	case "discord":
		return map[string]string{"content": message}, nil
	case "json":
		return map[string]string{"message": message}, nil
	default:
		return nil, fmt.Errorf("unsupported webhook notify type %q", kind)
	}
}

// Notify posts message to the webhook.
func (w *WebhookNotifier) Notify(ctx context.Context, message string) error {
	payload, err := webhookPayload(w.kind, message)
	if err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	log.Printf("[notify] %s webhook returned %s: %q", w.kind, resp.Status, string(respBody))
	return fmt.Errorf("webhook returned status %s", resp.Status)
}
