package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConfirmationStore records which payment confirmations have already been
// processed, so replayed callbacks do not re-emit domain events. The ledger
// mutations themselves are idempotent either way.
type ConfirmationStore interface {
	// FirstConfirmation reports whether this (application, kind) confirmation
	// is being seen for the first time.
	FirstConfirmation(ctx context.Context, applicationID, kind string) (bool, error)
}

const confirmationTTL = 30 * 24 * time.Hour

// RedisConfirmationStore implements ConfirmationStore via SETNX.
type RedisConfirmationStore struct {
	client *redis.Client
}

// NewRedisConfirmationStore builds the store.
func NewRedisConfirmationStore(client *redis.Client) *RedisConfirmationStore {
	return &RedisConfirmationStore{client: client}
}

// FirstConfirmation claims the dedupe key; the first caller wins.
func (s *RedisConfirmationStore) FirstConfirmation(ctx context.Context, applicationID, kind string) (bool, error) {
	if s == nil || s.client == nil {
		return true, nil
	}
	key := fmt.Sprintf("payment:confirmed:%s:%s", kind, applicationID)
	return s.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), confirmationTTL).Result()
}
