// Package notify delivers push notifications to news group topics.
// Delivery is fire and forget: the reconciliation path only queues
// outbox records; this package sends them and records the outcome.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Message struct {
	Topic       string
	Title       string
	Body        string
	Image       string
	NewsGroupID string
}

type Notifier interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// HTTPNotifier posts messages to an FCM-compatible HTTP endpoint.
type HTTPNotifier struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPNotifier(endpoint, apiKey string) *HTTPNotifier {
	return &HTTPNotifier{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (n *HTTPNotifier) Send(ctx context.Context, msg Message) (string, error) {
	payload := pushRequest{
		To:       "/topics/" + msg.Topic,
		Priority: "high",
		Notification: pushNotification{
			Title: msg.Title,
			Body:  msg.Body,
			Image: msg.Image,
		},
		Data: pushData{
			ClickAction: "FLUTTER_NOTIFICATION_CLICK",
			NewsGroupID: msg.NewsGroupID,
			Title:       msg.Title,
			Body:        msg.Body,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("push marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+n.apiKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("push send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("push send: unexpected status %d", resp.StatusCode)
	}

	var raw pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("push decode: %w", err)
	}

	return raw.MessageID, nil
}

type pushRequest struct {
	To           string           `json:"to"`
	Priority     string           `json:"priority"`
	Notification pushNotification `json:"notification"`
	Data         pushData         `json:"data"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

type pushData struct {
	ClickAction string `json:"click_action"`
	NewsGroupID string `json:"news_group_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

type pushResponse struct {
	MessageID string `json:"message_id"`
}
