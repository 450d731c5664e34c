// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"infinitewash/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient stores booking sessions.
	SessionCacheClient *redis.Client
)

// RedisEnabled reports whether a redis address has been configured.
func RedisEnabled() bool {
	return config.AppConfig.RedisAddr != ""
}

// InitSessionCache initializes the redis client used for booking sessions.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Session Cache): %v", err)
	}
}

// GetSessionCacheClient returns the booking session client, or nil when redis is not configured.
func GetSessionCacheClient() *redis.Client {
	if !RedisEnabled() {
		return nil
	}
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
