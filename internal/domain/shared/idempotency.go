package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys that have already been applied,
// so a client retrying a ledger mutation does not move stock twice.
type IdempotencyStore interface {
	// Claim marks the key as taken for ttl.
	// Returns true if the key was newly claimed, false if it was already taken.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets a key so that a failed request can be retried with it.
	Release(ctx context.Context, key string) error

	// IsClaimed reports whether the key is currently taken
	IsClaimed(ctx context.Context, key string) (bool, error)

	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a claimed key blocks replays. Default: 24 hours
	TTL time.Duration

	// Enabled determines whether the Idempotency-Key header is honoured
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
