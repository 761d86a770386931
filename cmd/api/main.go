package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"newspector/db"
	"newspector/internal/handler"
	"newspector/internal/store"
)

type redisEventQueue struct{}

func (redisEventQueue) Push(data string) error {
	return db.PushToQueue(db.EventQueueKey, data)
}

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

	documents := store.NewPostgres(db.DB)
	eventHandler := handler.NewEventHandler(redisEventQueue{})
	aggregateHandler := handler.NewAggregateHandler(documents)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/events/items", eventHandler.PostItemEvent)
	r.POST("/events/groups", eventHandler.PostGroupEvent)
	r.POST("/events/votes", eventHandler.PostVoteEvent)
	r.POST("/events/reports", eventHandler.PostReportEvent)
	r.GET("/accounts/:id", aggregateHandler.GetAccount)
	r.GET("/groups/:id", aggregateHandler.GetNewsGroup)
	r.GET("/health", aggregateHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
