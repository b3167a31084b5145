package replay_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netandconnect/portal/pkg/replay"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL is not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestRedisStore_Consume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newRedisClient(t)

	prefix := "test:" + uuid.NewString() + ":"
	store := replay.NewRedisStore(client, replay.WithKeyPrefix(prefix))

	ok, err := store.Consume(ctx, "sig", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, "sig", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.PTTL(ctx, prefix+"sig").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	_, err = store.Consume(ctx, "", time.Minute)
	assert.ErrorIs(t, err, replay.ErrKeyRequired)
}

func TestRedisStore_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newRedisClient(t)

	store := replay.NewRedisStore(client, replay.WithKeyPrefix("test:"+uuid.NewString()+":"))

	ok, err := store.Consume(ctx, "sig", 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	require.Eventually(t, func() bool {
		ok, err := store.Consume(ctx, "sig", time.Minute)
		return err == nil && ok
	}, 2*time.Second, 20*time.Millisecond)
}
