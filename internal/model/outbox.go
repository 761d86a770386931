package model

import "time"

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// OutboxRecord is a push notification queued inside the attribution
// transaction and delivered later by the notifier. A record is sent at
// most once; failures are recorded, never retried.
type OutboxRecord struct {
	ID          string
	Topic       string
	Title       string
	Body        string
	Image       string
	NewsGroupID string
	Status      string
	MessageID   string
	CreatedAt   time.Time
	SentAt      *time.Time
}
