package redis

import (
	"context"
	"fmt"
	"time"

	"tms/internal/app/config"

	"github.com/go-redis/redis/v8"
)

const jwtPrefix = "jwt."

// Client — обёртка над Redis для blacklist'а JWT токенов
type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := &Client{cfg: cfg}

	redisClient := redis.NewClient(&redis.Options{
		Password:    cfg.Password,
		Username:    cfg.User,
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	client.client = redisClient

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cant ping redis: %w", err)
	}

	return client, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// WriteJWTToBlacklist добавляет токен в blacklist на время жизни токена
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, getJWTKey(jwtStr), true, jwtTTL).Err()
}

// CheckJWTInBlacklist возвращает nil, если токен найден в blacklist
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, getJWTKey(jwtStr)).Err()
}

func getJWTKey(jwtStr string) string {
	return jwtPrefix + jwtStr
}
