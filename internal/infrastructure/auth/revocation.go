package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList answers whether a token id has been revoked. The identity
// service writes revocations; this service only reads them, except in tests.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisRevocationList reads revoked token ids from Redis keys with a TTL
// equal to the token's remaining lifetime
type RedisRevocationList struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRevocationList creates a revocation list on an existing client
func NewRedisRevocationList(client *redis.Client, keyPrefix string) *RedisRevocationList {
	if keyPrefix == "" {
		keyPrefix = "token:revoked:"
	}
	return &RedisRevocationList{client: client, keyPrefix: keyPrefix}
}

// Revoke marks jti as revoked for ttl
func (l *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := l.client.Set(ctx, l.keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti is revoked
func (l *RedisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := l.client.Get(ctx, l.keyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

// InMemoryRevocationList is a single-process RevocationList
type InMemoryRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
	now     func() time.Time
}

// NewInMemoryRevocationList creates an empty in-memory revocation list
func NewInMemoryRevocationList() *InMemoryRevocationList {
	return &InMemoryRevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marks jti as revoked for ttl
func (l *InMemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[jti] = l.now().Add(ttl)
	return nil
}

// IsRevoked reports whether jti is revoked and the revocation has not lapsed
func (l *InMemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiry, ok := l.revoked[jti]
	if !ok {
		return false, nil
	}
	if l.now().After(expiry) {
		delete(l.revoked, jti)
		return false, nil
	}
	return true, nil
}

var (
	_ RevocationList = (*RedisRevocationList)(nil)
	_ RevocationList = (*InMemoryRevocationList)(nil)
)
