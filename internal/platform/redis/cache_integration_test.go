// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package redis_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/libra/internal/platform/redis"
	"github.com/taibuivan/libra/internal/platform/testinfra"
)

type ranking struct {
	IDs []int `json:"ids"`
}

func TestJSONCache_RoundTripAndInvalidate(t *testing.T) {
	ctx := t.Context()
	client, err := redisstore.NewClient(ctx, testinfra.Redis(t), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache := redisstore.NewJSONCache(client, "recommend:book:", time.Minute)
	other := redisstore.NewJSONCache(client, "other:", time.Minute)

	var got ranking
	assert.ErrorIs(t, cache.Get(ctx, "1:10", &got), redisstore.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "1:10", ranking{IDs: []int{4, 2}}))
	require.NoError(t, cache.Set(ctx, "2:10", ranking{IDs: []int{9}}))
	require.NoError(t, other.Set(ctx, "keep", ranking{IDs: []int{1}}))

	require.NoError(t, cache.Get(ctx, "1:10", &got))
	assert.Equal(t, []int{4, 2}, got.IDs)

	ttl, err := client.TTL(ctx, "recommend:book:1:10").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, cache.DeletePrefix(ctx, ""))
	assert.ErrorIs(t, cache.Get(ctx, "1:10", &got), redisstore.ErrCacheMiss)
	assert.ErrorIs(t, cache.Get(ctx, "2:10", &got), redisstore.ErrCacheMiss)
	require.NoError(t, other.Get(ctx, "keep", &got), "other prefixes survive")
}
