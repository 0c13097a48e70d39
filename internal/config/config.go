package config

import (
	"fmt"
	"os"
	"strings"
)

// DefaultModel is the transcription model used when GROQ_MODEL is not set.
const DefaultModel = "whisper-large-v3"

type Config struct {
	TelegramToken string
	BotName       string // bot username, used to detect mentions in groups
	ProviderName  string
	APIKey        string
	Model         string
	SentryDSN     string
	DatabasePath  string
	HTTPAddr      string // empty disables the stats HTTP server
	LogLevel      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken: cleanEnv(os.Getenv("TELEGRAM_TOKEN")),
		BotName:       strings.TrimPrefix(cleanEnv(os.Getenv("BOT_NAME")), "@"),
		ProviderName:  getEnv("STT_PROVIDER", "groq"),
		APIKey:        strings.TrimPrefix(cleanEnv(os.Getenv("GROQ_API_KEY")), "Bearer "),
		Model:         getEnv("GROQ_MODEL", DefaultModel),
		SentryDSN:     cleanEnv(os.Getenv("SENTRY_DSN")),
		DatabasePath:  getEnv("DATABASE_PATH", "transcriptions.db"),
		HTTPAddr:      cleanEnv(os.Getenv("HTTP_ADDR")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	// Validate required environment variables
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required. Get one from @BotFather and set it as environment variable:\n  export TELEGRAM_TOKEN=\"123456:ABC...\"")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required. Please set it as environment variable:\n  export GROQ_API_KEY=\"gsk_...\"")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := cleanEnv(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// cleanEnv normalizes env values that may be quoted or padded with whitespace.
func cleanEnv(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"`)
	value = strings.Trim(value, `'`)
	return value
}
