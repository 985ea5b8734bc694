package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfpl/scout-api/internal/models"
)

func samplePredictions() []models.Prediction {
	return []models.Prediction{
		{WebName: "Salah", TeamName: "Liverpool", ElementType: 3, ExpectedPoints: 8.4},
		{WebName: "Haaland", TeamName: "Man City", ElementType: 4, ExpectedPoints: 9.1},
	}
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(client, time.Hour)
	ctx := context.Background()

	_, err := cache.Get(ctx, 10)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, 10, samplePredictions()))

	got, err := cache.Get(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Salah", got[0].WebName)
	assert.InDelta(t, 9.1, got[1].ExpectedPoints, 1e-9)

	// Other gameweeks stay cold.
	_, err = cache.Get(ctx, 11)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Expiration(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 5, samplePredictions()))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, 5)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, err := cache.Get(ctx, 3)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, 3, samplePredictions()))

	got, err := cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
