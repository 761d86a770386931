package notify

import (
	"context"
	"log/slog"
	"time"

	"newspector/internal/model"
)

type OutboxStore interface {
	PendingNotifications(ctx context.Context, limit int) ([]model.OutboxRecord, error)
	MarkNotificationSent(ctx context.Context, id, messageID string) error
	MarkNotificationFailed(ctx context.Context, id string) error
}

// Dispatcher drains the notification outbox. A record is attempted once:
// send failures mark it failed and move on, they are never retried and
// never touch aggregate state.
type Dispatcher struct {
	store     OutboxStore
	notifier  Notifier
	batchSize int
}

func NewDispatcher(store OutboxStore, notifier Notifier) *Dispatcher {
	return &Dispatcher{
		store:     store,
		notifier:  notifier,
		batchSize: 50,
	}
}

// DispatchOnce sends one batch of pending notifications and reports how
// many were delivered.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	records, err := d.store.PendingNotifications(ctx, d.batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, rec := range records {
		messageID, err := d.notifier.Send(ctx, Message{
			Topic:       rec.Topic,
			Title:       rec.Title,
			Body:        rec.Body,
			Image:       rec.Image,
			NewsGroupID: rec.NewsGroupID,
		})
		if err != nil {
			slog.Error("error sending notification", "outbox_id", rec.ID, "topic", rec.Topic, "error", err)
			if err := d.store.MarkNotificationFailed(ctx, rec.ID); err != nil {
				slog.Error("error marking notification failed", "outbox_id", rec.ID, "error", err)
			}
			continue
		}

		if err := d.store.MarkNotificationSent(ctx, rec.ID, messageID); err != nil {
			slog.Error("error marking notification sent", "outbox_id", rec.ID, "error", err)
			continue
		}
		sent++
	}

	return sent, nil
}

// Run polls the outbox until the context is canceled.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sent, err := d.DispatchOnce(ctx)
			if err != nil {
				slog.Error("error dispatching notifications", "error", err)
				continue
			}
			if sent > 0 {
				slog.Info("notifications dispatched", "sent", sent)
			}
		}
	}
}
