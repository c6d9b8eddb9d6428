package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist rejects tokens that were logged out before they expired.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type RedisTokenBlacklist struct {
	Client *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{Client: client}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:access:%s", token)
}

// BlacklistToken stores the token until its own expiry. Tokens that are
// already expired are ignored.
func (tb *RedisTokenBlacklist) BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := tb.Client.Set(ctx, blacklistKey(token), "true", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in Redis: %w", err)
	}
	return nil
}

func (tb *RedisTokenBlacklist) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := tb.Client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("error checking token blacklist: %w", err)
	}
	return n > 0, nil
}
