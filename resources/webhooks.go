package resources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quodohq/quodo-go/api"
)

// Webhook ...
type Webhook struct {
	ID     int64    `json:"id"`
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

// WebhooksService ...
type WebhooksService struct {
	client *api.Client
}

// List returns the registered webhooks.
func (s *WebhooksService) List(ctx context.Context) ([]Webhook, error) {
	var webhooks []Webhook
	if err := s.client.GetInto(ctx, "webhooks", nil, &webhooks); err != nil {
		return nil, err
	}
	return webhooks, nil
}

// Create registers a webhook. Events always serializes as a JSON array, even
// with a single entry.
func (s *WebhooksService) Create(ctx context.Context, url string, events []string) (*Webhook, error) {
	var webhook Webhook
	body := api.Body{"url": url, "events": events}
	if err := s.client.SendInto(ctx, http.MethodPost, "webhooks", nil, body, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

// Delete removes a webhook.
func (s *WebhooksService) Delete(ctx context.Context, webhookID int64) error {
	return deleteResource(ctx, s.client, fmt.Sprintf("webhooks/%d", webhookID))
}
