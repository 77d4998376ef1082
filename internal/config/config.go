// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the bot and CLI read from the environment
type Config struct {
	API     APIConfig
	Discord DiscordConfig
	Redis   RedisConfig
	Log     LogConfig
	Metrics MetricsConfig
	UI      UIConfig
}

// APIConfig points at the chapter meal REST API
type APIConfig struct {
	BaseURL string
}

type DiscordConfig struct {
	Token         string
	ApplicationID string

	// GuildID registers commands to a single guild during development
	GuildID string
}

// RedisConfig is where the bot keeps each member's token and theme
type RedisConfig struct {
	Addr     string
	Password string

	// TokenTTL expires persisted tokens; zero keeps them until logout
	TokenTTL time.Duration
}

type LogConfig struct {
	Level slog.Level
}

// MetricsConfig enables the Prometheus endpoint when Addr is set
type MetricsConfig struct {
	Addr string
}

type UIConfig struct {
	// BannerTTL is how long a success banner stays visible
	BannerTTL time.Duration

	// Location is the calendar used to group meals by day
	Location *time.Location
}

// Load reads the environment. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %w", err)
	}
	if ttlHours < 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: must not be negative")
	}

	bannerSeconds, err := strconv.Atoi(getEnv("BANNER_SECONDS", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid BANNER_SECONDS: %w", err)
	}

	level, err := ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	return &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000"), "/"),
		},
		Discord: DiscordConfig{
			Token:         getEnv("DISCORD_TOKEN", ""),
			ApplicationID: getEnv("APPLICATION_ID", ""),
			GuildID:       getEnv("GUILD_ID", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			TokenTTL: time.Duration(ttlHours) * time.Hour,
		},
		Log: LogConfig{
			Level: level,
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
		UI: UIConfig{
			BannerTTL: time.Duration(bannerSeconds) * time.Second,
			Location:  loc,
		},
	}, nil
}

// ParseLevel maps debug, info, warn and error onto slog levels
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

// NewLogger builds the text logger both binaries use
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// getEnv returns the environment value or the fallback when unset or empty
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
