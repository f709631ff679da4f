package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsubapp/subtracker/internal/config"
	"github.com/unsubapp/subtracker/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := models.Subscription{ID: 1, UserID: 7, Name: "Netflix", Price: "9.99"}
	err := cache.Set("subscription:1", expected, time.Minute)
	require.NoError(t, err)

	var actual models.Subscription
	found, err := cache.Get("subscription:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
	assert.Equal(t, 7, actual.UserID)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out models.Subscription
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("subscription:1", models.Subscription{ID: 1}, time.Minute))
	require.NoError(t, cache.Invalidate("subscription:1"))

	var out models.Subscription
	found, err := cache.Get("subscription:1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
