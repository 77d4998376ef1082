package localstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/chapterplate/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "localstate:"

// RedisConfig holds configuration for the Redis state repository
type RedisConfig struct {
	RedisClient *redis.Client

	// TokenTTL expires saved tokens; zero means no expiry
	TokenTTL time.Duration
}

type redisRepository struct {
	client   *redis.Client
	tokenTTL time.Duration
}

// NewRedis creates a Redis-backed state repository, one key pair per principal
func NewRedis(cfg *RedisConfig) (*redisRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client:   cfg.RedisClient,
		tokenTTL: cfg.TokenTTL,
	}, nil
}

func tokenKey(principal string) string {
	return keyPrefix + principal + ":token"
}

func themeKey(principal string) string {
	return keyPrefix + principal + ":theme"
}

func (r *redisRepository) GetToken(ctx context.Context, input *GetTokenInput) (string, error) {
	if input == nil || input.Principal == "" {
		return "", ErrEmptyPrincipal
	}

	token, err := r.client.Get(ctx, tokenKey(input.Principal)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return token, nil
}

func (r *redisRepository) SaveToken(ctx context.Context, input *SaveTokenInput) error {
	if input == nil || input.Principal == "" {
		return ErrEmptyPrincipal
	}
	if input.Token == "" {
		return ErrEmptyToken
	}

	if err := r.client.Set(ctx, tokenKey(input.Principal), input.Token, r.tokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (r *redisRepository) DeleteToken(ctx context.Context, input *DeleteTokenInput) error {
	if input == nil || input.Principal == "" {
		return ErrEmptyPrincipal
	}

	if err := r.client.Del(ctx, tokenKey(input.Principal)).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (r *redisRepository) GetTheme(ctx context.Context, input *GetThemeInput) (models.Theme, error) {
	if input == nil || input.Principal == "" {
		return "", ErrEmptyPrincipal
	}

	theme, err := r.client.Get(ctx, themeKey(input.Principal)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.ThemeLight, nil
		}
		return "", fmt.Errorf("failed to get theme: %w", err)
	}

	if t := models.Theme(theme); t.Valid() {
		return t, nil
	}
	return models.ThemeLight, nil
}

func (r *redisRepository) SaveTheme(ctx context.Context, input *SaveThemeInput) error {
	if input == nil || input.Principal == "" {
		return ErrEmptyPrincipal
	}
	if !input.Theme.Valid() {
		return ErrInvalidTheme
	}

	// themes never expire
	if err := r.client.Set(ctx, themeKey(input.Principal), string(input.Theme), 0).Err(); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
