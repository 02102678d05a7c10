package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	SupabaseURL     string
	SupabaseAnonKey string
	TelegramToken   string
	LogLevel        slog.Level
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local runs.
func LoadConfig() (*Config, error) {
	// Deployments set the environment directly; a missing .env is fine.
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		LogLevel:        slog.LevelInfo,
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN must be set")
	}
	return cfg, nil
}
