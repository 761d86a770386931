package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"newspector/db"
	"newspector/internal/ledger"
	"newspector/internal/model"
	"newspector/internal/reconcile"
	"newspector/internal/store"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	retention := envDuration("EVENT_RETENTION", 15*time.Minute)

	documents := store.NewPostgres(db.DB)
	eventLedger := ledger.NewRedisLedger(db.Redis, db.LedgerKeyRoot, retention)
	reconciler := reconcile.New(documents, eventLedger)

	ctx := context.Background()

	for {
		raw, err := db.PopFromQueue(db.EventQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		var envelope model.Envelope
		if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
			slog.Error("invalid event envelope in queue", "error", err)
			continue
		}

		if err := dispatch(ctx, reconciler, envelope); err != nil {
			slog.Error("error handling event", "kind", envelope.Kind, "event_id", envelope.EventID, "error", err)
			continue
		}

		slog.Info("event handled", "kind", envelope.Kind, "event_id", envelope.EventID)
	}
}

func dispatch(ctx context.Context, r *reconcile.Reconciler, envelope model.Envelope) error {
	switch envelope.Kind {
	case model.EventItemUpdate:
		var ev model.ItemChangeEvent
		if err := json.Unmarshal(envelope.Payload, &ev); err != nil {
			return err
		}
		return r.HandleItemUpdate(ctx, ev)
	case model.EventGroupUpdate:
		var ev model.GroupChangeEvent
		if err := json.Unmarshal(envelope.Payload, &ev); err != nil {
			return err
		}
		return r.HandleGroupUpdate(ctx, ev)
	case model.EventGroupCreate:
		var ev model.GroupCreateEvent
		if err := json.Unmarshal(envelope.Payload, &ev); err != nil {
			return err
		}
		return r.HandleGroupCreate(ctx, ev)
	case model.EventVote:
		var ev model.VoteEvent
		if err := json.Unmarshal(envelope.Payload, &ev); err != nil {
			return err
		}
		return r.HandleVote(ctx, ev)
	case model.EventReport:
		var ev model.ReportEvent
		if err := json.Unmarshal(envelope.Payload, &ev); err != nil {
			return err
		}
		return r.HandleReport(ctx, ev)
	default:
		slog.Warn("unknown event kind in queue", "kind", envelope.Kind)
		return nil
	}
}

func envDuration(name string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration, using default", "env", name, "value", value, "default", defaultValue)
		return defaultValue
	}
	return parsed
}
