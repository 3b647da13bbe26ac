package main

import (
	"context"
	"log"
	"time"

	"github.com/linkgrove/linkgrove-v2/backend/config"
	"github.com/linkgrove/linkgrove-v2/backend/internal/database"
	"github.com/linkgrove/linkgrove-v2/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	waitCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.WaitForDatabase(waitCtx, cfg); err != nil {
		cancel()
		log.Fatalf("Database not ready: %v", err)
	}
	cancel()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Share code uploads degrade gracefully without S3.
	s3cfg, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("S3 unavailable, share codes served inline only: %v", err)
		s3cfg = nil
	}

	srv, err := server.NewServer(cfg, db, redisClient, s3cfg)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	if err := srv.Start(cfg.ServerHost, cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
