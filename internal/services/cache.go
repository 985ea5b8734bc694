package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openfpl/scout-api/internal/models"
)

// ErrCacheMiss is returned when no predictions are cached for a
// gameweek.
var ErrCacheMiss = errors.New("cache miss")

// PredictionCache holds computed per-gameweek predictions so repeated
// requests for the same gameweek reuse them. The check-then-write flow
// is deliberately unlocked: concurrent misses may compute twice, which
// is accepted since computation is idempotent.
type PredictionCache interface {
	Get(ctx context.Context, gameweek int) ([]models.Prediction, error)
	Set(ctx context.Context, gameweek int, predictions []models.Prediction) error
}

func predictionsKey(gameweek int) string {
	return fmt.Sprintf("scout:predictions:%d", gameweek)
}

// RedisCache backs the prediction cache with Redis.
type RedisCache struct {
	client     *redis.Client
	expiration time.Duration
}

func NewRedisCache(client *redis.Client, expiration time.Duration) *RedisCache {
	return &RedisCache{
		client:     client,
		expiration: expiration,
	}
}

func (c *RedisCache) Get(ctx context.Context, gameweek int) ([]models.Prediction, error) {
	data, err := c.client.Get(ctx, predictionsKey(gameweek)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var predictions []models.Prediction
	if err := json.Unmarshal([]byte(data), &predictions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached predictions: %w", err)
	}
	return predictions, nil
}

func (c *RedisCache) Set(ctx context.Context, gameweek int, predictions []models.Prediction) error {
	data, err := json.Marshal(predictions)
	if err != nil {
		return fmt.Errorf("failed to marshal predictions: %w", err)
	}
	if err := c.client.Set(ctx, predictionsKey(gameweek), data, c.expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// MemoryCache is the in-process fallback used when Redis is not
// configured.
type MemoryCache struct {
	mu          sync.RWMutex
	predictions map[int][]models.Prediction
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		predictions: make(map[int][]models.Prediction),
	}
}

func (c *MemoryCache) Get(_ context.Context, gameweek int) ([]models.Prediction, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	predictions, ok := c.predictions[gameweek]
	if !ok {
		return nil, ErrCacheMiss
	}
	return predictions, nil
}

func (c *MemoryCache) Set(_ context.Context, gameweek int, predictions []models.Prediction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.predictions[gameweek] = predictions
	return nil
}
