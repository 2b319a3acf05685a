package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/krezhov/santabot/internal/api"
	"github.com/krezhov/santabot/internal/bot"
	"github.com/krezhov/santabot/internal/config"
	"github.com/krezhov/santabot/internal/db"
	"github.com/krezhov/santabot/internal/santa"
	"github.com/krezhov/santabot/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	database, err := db.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Telegram transport, assignment engine and bot
	client := telegram.New(cfg.BotToken)
	engine := santa.New(database)
	santaBot := bot.New(cfg, database, engine, client)

	// Initialize API server
	apiServer := api.New(cfg, database)

	// Start API server
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Printf("API server error: %v", err)
		}
	}()

	// Run the bot until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	santaBot.Run(ctx)

	log.Println("Shutting down...")
}
