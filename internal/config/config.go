package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram Bot
	BotToken     string
	OrganizerIDs map[int64]bool

	// Database
	DatabaseURL string

	// Web Server
	WebBind       string
	JWTSecret     string
	AdminAPIToken string

	// Event
	DropOffNote string
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		WebBind:       getEnvDefault("WEB_BIND", "0.0.0.0:3000"),
		JWTSecret:     getEnvDefault("JWT_SECRET", "dev-only-change-me"),
		AdminAPIToken: os.Getenv("ADMIN_API_TOKEN"),
		DropOffNote:   os.Getenv("DROP_OFF_NOTE"),
	}

	organizers, err := parseOrganizerIDs(os.Getenv("ORGANIZER_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.OrganizerIDs = organizers

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if len(cfg.OrganizerIDs) == 0 {
		return nil, fmt.Errorf("ORGANIZER_IDS is required")
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseOrganizerIDs parses a comma-separated list of Telegram user ids,
// e.g. "123456789,987654321".
func parseOrganizerIDs(raw string) (map[int64]bool, error) {
	ids := make(map[int64]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ORGANIZER_IDS: invalid id '%s'", part)
		}
		ids[id] = true
	}
	return ids, nil
}
