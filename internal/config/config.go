package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	StoreURL string
	StoreRPS float64
	Gemini   GeminiConfig
	SMTP     SMTPConfig
	Admin    AdminConfig
	Session  SessionConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type AdminConfig struct {
	Username string
	Password string
}

type SessionConfig struct {
	Secret string
	File   string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}

	port, err := strconv.Atoi(env("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT: %w", err)
	}

	rps, err := strconv.ParseFloat(env("STORE_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("STORE_RPS: %w", err)
	}

	return &Config{
		StoreURL: env("STORE_URL", "https://hospital-default-rtdb.firebaseio.com"),
		StoreRPS: rps,
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  env("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		SMTP: SMTPConfig{
			Host:     env("SMTP_SERVER", "smtp.gmail.com"),
			Port:     port,
			Username: os.Getenv("SMTP_EMAIL"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     env("SMTP_FROM", os.Getenv("SMTP_EMAIL")),
		},
		Admin: AdminConfig{
			Username: env("ADMIN_USERNAME", "admin"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Session: SessionConfig{
			Secret: secret,
			File:   env("SESSION_FILE", ".hospital-session"),
		},
	}, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
