package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recommender/internal/config"
	"recommender/internal/metrics"
	"recommender/internal/model"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	cacheKeyPrefix     = "reco:"
	cacheKeyCategories = "categories:all"
	cacheKeyEventTypes = "events:types"
)

// NewRedisClient connects to redis and checks the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// CachedStore serves the slow-changing lookups from redis and passes
// everything else through. Redis failures fall back to the wrapped store.
type CachedStore struct {
	Store
	client *redis.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

// NewCachedStore wraps next with a redis read cache
func NewCachedStore(next Store, client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *CachedStore {
	return &CachedStore{Store: next, client: client, ttl: ttl, log: log}
}

// AllCategories returns the cached category list, loading it on a miss
func (s *CachedStore) AllCategories(ctx context.Context) ([]model.Category, error) {
	return cached(ctx, s, cacheKeyCategories, s.Store.AllCategories)
}

// EventTypes returns the cached event types, loading them on a miss
func (s *CachedStore) EventTypes(ctx context.Context) ([]string, error) {
	return cached(ctx, s, cacheKeyEventTypes, s.Store.EventTypes)
}

func cached[T any](ctx context.Context, s *CachedStore, key string, load func(context.Context) (T, error)) (T, error) {
	fullKey := cacheKeyPrefix + key

	data, err := s.client.Get(ctx, fullKey).Bytes()
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			metrics.CacheLookups.WithLabelValues(key, "hit").Inc()
			return value, nil
		}
		s.log.WithField("key", fullKey).Warn("discarding undecodable cache entry")
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues(key, "miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues(key, "error").Inc()
		s.log.WithError(err).WithField("key", fullKey).Warn("cache read failed")
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		if err := s.client.Set(ctx, fullKey, data, s.ttl).Err(); err != nil {
			s.log.WithError(err).WithField("key", fullKey).Warn("cache write failed")
		}
	}
	return value, nil
}

// Invalidate drops every cached lookup
func (s *CachedStore) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, cacheKeyPrefix+cacheKeyCategories, cacheKeyPrefix+cacheKeyEventTypes).Err()
}
