// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"datekeeper/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient caches extraction results keyed by text hash. It is optional:
// when Redis is unreachable the service runs without caching.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client using the configured DB.
func InitCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Sugar().Warnf("Redis unavailable, extraction cache disabled: %v", err)
		return
	}
	CacheClient = client
}

// GetCacheClient returns the cache client, or nil when caching is disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}
