package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"discussion_bot/internal/config"
	"discussion_bot/internal/discord"
	"discussion_bot/internal/metrics"
	"discussion_bot/internal/notify"
	"discussion_bot/internal/pipeline"
	"discussion_bot/internal/scheduler"
	"discussion_bot/internal/scraper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := discord.New(cfg.DiscordToken, cfg.ServerID)
	if err != nil {
		log.Error("create discord client", "error", err)
		os.Exit(1)
	}

	user, err := client.BotUser(ctx)
	if err != nil {
		log.Error("log in to discord", "error", err)
		os.Exit(1)
	}
	guild, err := client.GuildName(ctx)
	if err != nil {
		log.Error("look up guild", "guild_id", cfg.ServerID, "error", err)
		os.Exit(1)
	}
	log.Info("logged in", "user", user, "guild", guild)

	if cfg.ScrapeURL == "" {
		log.Warn("ARI_SCRAPE_URL is not set; every cycle will fail until it is configured")
	}

	s := scraper.New(&http.Client{}, cfg.ScrapeURL, log)
	p := pipeline.New(s, client, pipeline.Options{
		CategoryID:     cfg.CategoryID,
		Concurrency:    cfg.CreateConcurrency,
		CreateInterval: cfg.CreateInterval,
	}, log)

	sched := scheduler.New(p, cfg.ScrapeInterval, log)

	if cfg.NotificationsEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Error("create telegram notifier", "error", err)
			os.Exit(1)
		}
		sched.SetReporter(tg)
	}

	if cfg.MetricsAddr != "" {
		srv := startMetrics(cfg.MetricsAddr, log)
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	log.Info("starting bot", "interval", cfg.ScrapeInterval, "category_id", cfg.CategoryID)

	sched.Run(ctx)

	log.Info("bot stopped")
}

func startMetrics(addr string, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", "error", err)
		}
	}()
	return srv
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
