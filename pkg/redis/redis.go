package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ahogberg/handymate-dashboard-sub000/config"
)

// Client wraps the Redis connection. Used for the token blacklist, request
// rate limiting and the last-sync status record.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and pings it.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken stores a JWT ID with a TTL equal to the token's remaining
// lifetime.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to block
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether a JWT ID has been revoked.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── rate limiting ──

// CheckRateLimit implements a fixed-window counter per key. Returns false
// when the window already holds limit requests.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── sync status record ──

const syncStatusKey = "sync:status"

// SyncStatus is the persisted outcome of the most recent reconciliation run.
type SyncStatus struct {
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	LastError  string     `json:"last_error,omitempty"`
}

// SetSyncStatus stores the latest reconciliation outcome.
func (c *Client) SetSyncStatus(ctx context.Context, status SyncStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, syncStatusKey, payload, 0).Err()
}

// GetSyncStatus loads the latest reconciliation outcome. Returns a zero
// status when no sync has run yet.
func (c *Client) GetSyncStatus(ctx context.Context) (SyncStatus, error) {
	var status SyncStatus
	payload, err := c.rdb.Get(ctx, syncStatusKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return status, nil
		}
		return status, err
	}
	if err := json.Unmarshal(payload, &status); err != nil {
		return SyncStatus{}, err
	}
	return status, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
