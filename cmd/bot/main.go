package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/api"
	"github.com/KirkDiggler/chapterplate/internal/common/clock"
	"github.com/KirkDiggler/chapterplate/internal/common/uuid"
	"github.com/KirkDiggler/chapterplate/internal/config"
	"github.com/KirkDiggler/chapterplate/internal/handlers/discord"
	"github.com/KirkDiggler/chapterplate/internal/repositories/localstate"
	"github.com/KirkDiggler/chapterplate/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger(slog.LevelInfo).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Log.Level)

	fatal := func(msg string, err error) {
		logger.Error(msg, "error", err)
		os.Exit(1)
	}

	if cfg.Discord.Token == "" {
		fatal("DISCORD_TOKEN environment variable is required", errors.New("missing token"))
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal("failed to connect to Redis", err)
	}

	state, err := localstate.NewRedis(&localstate.RedisConfig{
		RedisClient: redisClient,
		TokenTTL:    cfg.Redis.TokenTTL,
	})
	if err != nil {
		fatal("failed to create local state repository", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := api.NewMetrics(registry)
	if err != nil {
		fatal("failed to register metrics", err)
	}

	client, err := api.New(&api.Config{
		BaseURL:       cfg.API.BaseURL,
		Logger:        logger,
		Metrics:       metrics,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		fatal("failed to create API client", err)
	}

	appClock := clock.New(cfg.UI.Location)
	sessions, err := session.NewManager(&session.ManagerConfig{
		LocalState: state,
		API:        client,
		Clock:      appClock,
		Logger:     logger,
	})
	if err != nil {
		fatal("failed to create session manager", err)
	}

	views, err := discord.NewViews(&discord.ViewsConfig{
		Sessions:   sessions,
		LocalState: state,
		Clock:      appClock,
		Location:   cfg.UI.Location,
		BannerTTL:  cfg.UI.BannerTTL,
		Logger:     logger,
	})
	if err != nil {
		fatal("failed to create views", err)
	}

	bot, err := discord.New(&discord.Config{
		Token:         cfg.Discord.Token,
		ApplicationID: cfg.Discord.ApplicationID,
		GuildID:       cfg.Discord.GuildID,
		Views:         views,
		Clock:         appClock,
		Location:      cfg.UI.Location,
		Logger:        logger,
	})
	if err != nil {
		fatal("failed to create Discord bot", err)
	}

	var metricsServer *http.Server
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("serving metrics", "addr", cfg.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	if err := bot.Start(); err != nil {
		fatal("failed to start Discord bot", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		logger.Error("error stopping bot", "error", err)
	}
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("error stopping metrics server", "error", err)
		}
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("error closing Redis client", "error", err)
	}

	logger.Info("bot has been shut down")
}
