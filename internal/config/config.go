// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultScrapeInterval    = 3600000
	defaultCreateConcurrency = 4
	defaultCreateIntervalMS  = 500
)

// Config holds the application configuration.
type Config struct {
	DiscordToken      string
	ServerID          string
	CategoryID        string
	ScrapeURL         string
	ScrapeInterval    time.Duration
	LogLevel          string
	MetricsAddr       string
	TelegramBotToken  string
	TelegramChatID    int64
	CreateConcurrency int
	CreateInterval    time.Duration
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present.
// ScrapeURL is not validated here; the scraper checks it on every cycle.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		ServerID:     os.Getenv("DISCORD_SERVER_ID"),
		CategoryID:   os.Getenv("DISCORD_CATEGORY_ID"),
		ScrapeURL:    os.Getenv("ARI_SCRAPE_URL"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
	}

	required := []struct{ key, value string }{
		{"DISCORD_TOKEN", cfg.DiscordToken},
		{"DISCORD_SERVER_ID", cfg.ServerID},
		{"DISCORD_CATEGORY_ID", cfg.CategoryID},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%s is required", r.key)
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	intervalMS, err := positiveInt("SCRAPE_INTERVAL", defaultScrapeInterval)
	if err != nil {
		return nil, err
	}
	cfg.ScrapeInterval = time.Duration(intervalMS) * time.Millisecond

	if cfg.CreateConcurrency, err = positiveInt("CREATE_CONCURRENCY", defaultCreateConcurrency); err != nil {
		return nil, err
	}

	createMS, err := positiveInt("CREATE_INTERVAL_MS", defaultCreateIntervalMS)
	if err != nil {
		return nil, err
	}
	cfg.CreateInterval = time.Duration(createMS) * time.Millisecond

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	rawChat := os.Getenv("TELEGRAM_CHAT_ID")
	switch {
	case cfg.TelegramBotToken == "" && rawChat == "":
	case cfg.TelegramBotToken == "" || rawChat == "":
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	default:
		chatID, err := strconv.ParseInt(rawChat, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", rawChat, err)
		}
		cfg.TelegramChatID = chatID
	}

	return cfg, nil
}

// NotificationsEnabled reports whether operator notifications are configured.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func positiveInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, raw)
	}
	return v, nil
}
