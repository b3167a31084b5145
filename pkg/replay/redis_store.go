package replay

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "replay:"

// RedisStore is a Store shared between instances through Redis.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the namespace prepended to every key.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore wraps a connected go-redis client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Consume implements Store with SET key 1 NX PX ttl.
func (s *RedisStore) Consume(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, ErrKeyRequired
	}
	if ttl <= 0 {
		return false, nil
	}
	// PX granularity is one millisecond.
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}

	ok, err := s.client.SetNX(ctx, s.prefix+key, 1, ttl).Result()
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}
	return ok, nil
}
