package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"trail-status-backend/config"
	"trail-status-backend/internal/api"
	"trail-status-backend/internal/beacon"
	"trail-status-backend/internal/crypt"
	"trail-status-backend/internal/db"
	"trail-status-backend/internal/notification"
	"trail-status-backend/internal/store"
	"trail-status-backend/internal/strava"
	"trail-status-backend/internal/trail"
)

func main() {
	logger := log.New(os.Stdout, "trail-status ", log.LstdFlags)

	// Optional .env for local development; deployment injects real env vars.
	if err := godotenv.Load(); err == nil {
		logger.Println(".env file loaded")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	cipher, err := crypt.New(cfg.Database.EncryptionKey)
	if err != nil {
		logger.Fatalf("failed to initialize token encryption: %v", err)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB, cipher)
	logger.Println("data store initialized")

	retrying := strava.NewRetryingClient(&http.Client{Timeout: 30 * time.Second}, strava.DefaultPolicy())
	tokens := strava.NewTokenManager(&cfg.Strava, appStore, retrying)
	stravaClient := strava.NewClient(&cfg.Strava, tokens, retrying)
	trailService := trail.NewService(&cfg.Trail)

	var webpushOptions *webpush.Options
	var workerPool *notification.WorkerPool
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		workerPool = notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		workerPool.Start(ctx)
	} else {
		logger.Println("VAPID keys are not configured; web push notifications disabled")
	}

	discord := notification.NewDiscordSender(cfg.Discord.WebhookURL, cfg.Discord.Username, cfg.Discord.AvatarURL)
	notifier := notification.NewService(discord, stravaClient, workerPool)

	source := beacon.NewSource(time.Duration(cfg.Beacon.TimeoutSeconds) * time.Second)
	poller := beacon.NewPoller(&cfg.Beacon, source, appStore, notifier)
	go poller.Run(ctx)

	router := api.NewRouter(cfg, appStore, stravaClient, trailService, tokens, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
