package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything read from the environment at startup. It is
// constructed once in main and passed down explicitly; nothing else in the
// codebase reads env vars at request time.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	BotToken    string // Telegram bot token, used to verify login-widget payloads
	SiteURL     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	return &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "secret_key_change_me"),
		BotToken:    os.Getenv("BOT_TOKEN"),
		SiteURL:     getenv("SITE_URL", "http://localhost:8080"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
