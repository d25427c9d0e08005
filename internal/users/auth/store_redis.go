// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/fitlog/internal/platform/constants"
	"github.com/taibuivan/fitlog/internal/platform/sec"
)

// # Identity Cache

// revokedMarker is stored in place of a deleted account's identity.
const revokedMarker = "revoked"

// RedisIdentityCache implements IdentityCache using Redis string keys with a TTL.
type RedisIdentityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisIdentityCache creates a new Redis-backed IdentityCache.
// A zero ttl falls back to [constants.IdentityCacheTTL].
func NewRedisIdentityCache(client redis.UniversalClient, ttl time.Duration) *RedisIdentityCache {
	if ttl <= 0 {
		ttl = constants.IdentityCacheTTL
	}
	return &RedisIdentityCache{client: client, ttl: ttl}
}

/*
Get retrieves a cached identity.

Description: A missing key is a cache miss, not an error. A corrupt entry is
deleted and reported as a miss so the caller falls back to the store. A
revoked account yields [ErrIdentityRevoked].

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *sec.Identity: Cached identity or nil
  - error: ErrIdentityRevoked or connectivity errors
*/
func (cache *RedisIdentityCache) Get(context context.Context, userID string) (*sec.Identity, error) {
	payload, err := cache.client.Get(context, identityKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_identity_cache_get_failed: %w", err)
	}
	if string(payload) == revokedMarker {
		return nil, ErrIdentityRevoked
	}

	identity := &sec.Identity{}
	if err := json.Unmarshal(payload, identity); err != nil || identity.UserID != userID {
		_ = cache.client.Del(context, identityKey(userID)).Err()
		return nil, nil
	}

	return identity, nil
}

/*
Set stores the identity for the configured TTL.

Description: Only an empty slot is written, so a concurrent read that started
before a deletion cannot overwrite the revocation marker.

Parameters:
  - context: context.Context
  - identity: *sec.Identity

Returns:
  - error: Serialization or connectivity errors
*/
func (cache *RedisIdentityCache) Set(context context.Context, identity *sec.Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("redis_identity_cache_encode_failed: %w", err)
	}

	if err := cache.client.SetNX(context, identityKey(identity.UserID), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_identity_cache_set_failed: %w", err)
	}
	return nil
}

/*
Invalidate removes the cached identity.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Connectivity errors
*/
func (cache *RedisIdentityCache) Invalidate(context context.Context, userID string) error {
	if err := cache.client.Del(context, identityKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis_identity_cache_delete_failed: %w", err)
	}
	return nil
}

/*
Revoke replaces the entry with the revocation marker for the configured TTL.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Connectivity errors
*/
func (cache *RedisIdentityCache) Revoke(context context.Context, userID string) error {
	if err := cache.client.Set(context, identityKey(userID), revokedMarker, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_identity_cache_revoke_failed: %w", err)
	}
	return nil
}

func identityKey(userID string) string {
	return constants.RedisPrefixIdentity + userID
}
