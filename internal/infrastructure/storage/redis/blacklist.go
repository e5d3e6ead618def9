// Package redis provides Redis-backed infrastructure components.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"berostock/internal/domain/auth"
)

const blacklistPrefix = "berostock:token:revoked:"

var _ auth.TokenBlacklist = (*TokenBlacklist)(nil)

// TokenBlacklist stores revoked access token ids with a TTL matching
// the token's remaining lifetime, so entries expire on their own.
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist creates a Redis-backed token blacklist.
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func (b *TokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, blacklistPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (b *TokenBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return n > 0, nil
}
