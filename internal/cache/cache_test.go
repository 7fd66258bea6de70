package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisKVStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisKVStore(client)
}

func TestRedisKVStore_SetGet(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "bearing:calc:1", `{"ok":true}`, time.Minute))

	val, err := store.Get(ctx, "bearing:calc:1")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, val)
}

func TestRedisKVStore_Miss(t *testing.T) {
	_, store := setupTestRedis(t)

	_, err := store.Get(context.Background(), "bearing:calc:absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisKVStore_Expiry(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", 10*time.Second))
	mr.FastForward(11 * time.Second)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	assert.Nil(t, NewRedisClient("127.0.0.1:1", "", 0))
}

func TestNewRedisClient_Reachable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	require.NotNil(t, client)
	_ = client.Close()
}

func TestKey_Stable(t *testing.T) {
	type req struct {
		A float64 `json:"a"`
		B float64 `json:"b"`
	}
	k1, err := Key("bearing:calc", req{A: 300, B: 400})
	require.NoError(t, err)
	k2, err := Key("bearing:calc", req{A: 300, B: 400})
	require.NoError(t, err)
	k3, err := Key("bearing:calc", req{A: 300, B: 401})
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Contains(t, k1, "bearing:calc:")
	assert.Len(t, k1, len("bearing:calc:")+64)
}
