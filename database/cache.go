package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"api/config"
	"api/metrics"
	"api/utils"
)

var REDIS *redis.Client

// DefaultCacheDuration is the TTL used when callers don't pick their own
const DefaultCacheDuration = 5 * time.Minute

// InitRedis initializes the Redis client used for response and session caching
func InitRedis() {
	REDIS = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := REDIS.Ping(ctx).Err(); err != nil {
		log.Printf("Redis not reachable at %s: %v", config.RedisAddr, err)
	}
}

// GetFromCache fetches a cached JSON value into target. Returns found=false
// on a miss or any cache error; the cache never fails a request.
func GetFromCache(ctx context.Context, key string, target interface{}) (bool, error) {
	cached, err := REDIS.Get(ctx, key).Result()
	if err != nil || cached == "" {
		metrics.CacheMisses.Inc()
		return false, err
	}
	if err := utils.UnmarshalJSON([]byte(cached), target); err != nil {
		metrics.CacheMisses.Inc()
		return false, err
	}
	metrics.CacheHits.Inc()
	return true, nil
}

// SetToCache stores a JSON value with the default TTL
func SetToCache(ctx context.Context, key string, value interface{}) error {
	data, err := utils.MarshalJSON(value)
	if err != nil {
		return err
	}
	return REDIS.Set(ctx, key, string(data), DefaultCacheDuration).Err()
}
