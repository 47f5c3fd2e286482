package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "s1", "tok"))
	token, ok, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	_, ok, _ = store.Load(ctx, "s2")
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "s1"))
	require.NoError(t, store.Delete(ctx, "s1"))
	_, ok, _ = store.Load(ctx, "s1")
	assert.False(t, ok)
}

// Needs a reachable server: AGORA_TEST_REDIS=127.0.0.1:6379
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("AGORA_TEST_REDIS")
	if addr == "" {
		t.Skip("AGORA_TEST_REDIS not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	store := NewRedisStore(rdb, "agora:test:"+NewID()+":", time.Minute)
	id := NewID()

	_, ok, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, id, "tok"))
	token, ok, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	ttl, err := rdb.TTL(ctx, store.key(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, id))
	_, ok, err = store.Load(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}
