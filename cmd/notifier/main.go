package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"newspector/db"
	"newspector/internal/notify"
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

	endpoint := os.Getenv("PUSH_ENDPOINT")
	if endpoint == "" {
		slog.Error("PUSH_ENDPOINT environment variable is not set")
		return
	}

	notifier := notify.NewHTTPNotifier(endpoint, os.Getenv("PUSH_API_KEY"))
	dispatcher := notify.NewDispatcher(store.NewPostgres(db.DB), notifier)

	interval := envDuration("NOTIFY_POLL_INTERVAL", 5*time.Second)

	slog.Info("notifier started", "interval", interval.String())
	dispatcher.Run(context.Background(), interval)
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
