package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// DefaultTokenTTL bounds how long an idle browser credential is kept.
const DefaultTokenTTL = 7 * 24 * time.Hour

// KV is the slice of the go-redis client the token store uses.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// TokenStoreProvider keeps one credential per client scope.
// Key format: dashboard:token:<scope>
type TokenStoreProvider struct {
	client KV
	ttl    time.Duration
}

var _ ports.TokenStoreProvider = (*TokenStoreProvider)(nil)

// NewTokenStoreProvider wraps a Redis client. A non-positive ttl means
// DefaultTokenTTL.
func NewTokenStoreProvider(client KV, ttl time.Duration) *TokenStoreProvider {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenStoreProvider{client: client, ttl: ttl}
}

func (p *TokenStoreProvider) For(scope string) ports.TokenStore {
	return &tokenStore{client: p.client, ttl: p.ttl, key: "dashboard:token:" + scope}
}

type tokenStore struct {
	client KV
	ttl    time.Duration
	key    string
}

func (s *tokenStore) Get(ctx context.Context) (domain.Credential, bool, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("token get: %w", err)
	}
	return domain.Credential(v), v != "", nil
}

func (s *tokenStore) Set(ctx context.Context, cred domain.Credential) error {
	if err := s.client.Set(ctx, s.key, string(cred), s.ttl).Err(); err != nil {
		return fmt.Errorf("token set: %w", err)
	}
	return nil
}

// Clear deletes the key; deleting a missing key is not an error.
func (s *tokenStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("token clear: %w", err)
	}
	return nil
}
