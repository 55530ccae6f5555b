// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by [JSONCache.Get] when the key is absent.
var ErrCacheMiss = errors.New("redis: cache miss")

// JSONCache stores JSON encoded values under a fixed key prefix.
type JSONCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewJSONCache creates a cache whose keys are prefix + key.
func NewJSONCache(client redis.UniversalClient, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{client: client, prefix: prefix, ttl: ttl}
}

// Get decodes the value stored under key into target.
func (cache *JSONCache) Get(context stdctx.Context, key string, target any) error {
	raw, err := cache.client.Get(context, cache.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("redis_cache_get_failed: %w", err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("redis_cache_decode_failed: %w", err)
	}
	return nil
}

// Set encodes value and stores it with the cache TTL.
func (cache *JSONCache) Set(context stdctx.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, cache.prefix+key, raw, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}
	return nil
}

// DeletePrefix removes every key under prefix + pattern using SCAN.
func (cache *JSONCache) DeletePrefix(context stdctx.Context, pattern string) error {
	iterator := cache.client.Scan(context, 0, cache.prefix+pattern+"*", 100).Iterator()
	for iterator.Next(context) {
		if err := cache.client.Del(context, iterator.Val()).Err(); err != nil {
			return fmt.Errorf("redis_cache_delete_failed: %w", err)
		}
	}
	return iterator.Err()
}
