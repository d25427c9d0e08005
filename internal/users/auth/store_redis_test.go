// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fitlog/internal/platform/sec"
	"github.com/taibuivan/fitlog/internal/users/auth"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*auth.RedisIdentityCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewRedisIdentityCache(client, ttl), server
}

func TestRedisIdentityCache_RoundTrip(t *testing.T) {
	cache, server := newRedisCache(t, time.Minute)
	ctx := context.Background()

	missing, err := cache.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	identity := &sec.Identity{UserID: "u-1", Name: "Ann", Email: "ann@x.io"}
	require.NoError(t, cache.Set(ctx, identity))
	assert.True(t, server.Exists("auth:identity:u-1"))

	cached, err := cache.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, identity, cached)

	require.NoError(t, cache.Invalidate(ctx, "u-1"))
	gone, err := cache.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRedisIdentityCache_Expires(t *testing.T) {
	cache, server := newRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &sec.Identity{UserID: "u-1", Name: "Ann", Email: "ann@x.io"}))
	assert.Equal(t, time.Minute, server.TTL("auth:identity:u-1"))

	server.FastForward(2 * time.Minute)

	expired, err := cache.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestRedisIdentityCache_CorruptEntryIsMiss(t *testing.T) {
	cache, server := newRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, server.Set("auth:identity:u-1", "{not json"))

	identity, err := cache.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.False(t, server.Exists("auth:identity:u-1"))
}

func TestRedisIdentityCache_Unavailable(t *testing.T) {
	cache, server := newRedisCache(t, time.Minute)
	server.Close()

	_, err := cache.Get(context.Background(), "u-1")
	assert.Error(t, err)
}

func TestRedisIdentityCache_RevokeBlocksRepopulation(t *testing.T) {
	cache, server := newRedisCache(t, time.Minute)
	ctx := context.Background()
	identity := &sec.Identity{UserID: "u-1", Name: "Ann", Email: "ann@x.io"}

	require.NoError(t, cache.Set(ctx, identity))
	require.NoError(t, cache.Revoke(ctx, "u-1"))
	assert.Equal(t, time.Minute, server.TTL("auth:identity:u-1"))

	_, err := cache.Get(ctx, "u-1")
	assert.ErrorIs(t, err, auth.ErrIdentityRevoked)

	require.NoError(t, cache.Set(ctx, identity))
	_, err = cache.Get(ctx, "u-1")
	assert.ErrorIs(t, err, auth.ErrIdentityRevoked)

	server.FastForward(2 * time.Minute)

	missing, err := cache.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
