package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"newspector/db"
	"newspector/internal/store"
	"newspector/internal/sweep"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	schedule := os.Getenv("SWEEP_SCHEDULE")
	if schedule == "" {
		schedule = "@every 2m"
	}

	ageThreshold := envDuration("SWEEP_AGE_THRESHOLD", time.Hour)

	sweeper := sweep.New(store.NewPostgres(db.DB), ageThreshold)

	c := cron.New()
	_, err = c.AddFunc(schedule, func() {
		if err := sweeper.Run(context.Background()); err != nil {
			slog.Error("sweep run failed", "error", err)
		}
	})
	if err != nil {
		log.Fatalf("invalid sweep schedule %q: %v", schedule, err)
	}

	slog.Info("sweeper started", "schedule", schedule, "age_threshold", ageThreshold.String())
	c.Run()
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
