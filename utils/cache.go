package utils

import (
	"context"
	"log"
	"time"

	"clinicdesk/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient holds conversation sessions, keyed by session ID with a
// TTL so abandoned conversations are evicted rather than accumulating.
var SessionCacheClient *redis.Client

// InitSessionCache initializes the Redis client backing the session registry.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (sessions): %v", err)
	}
}

// GetSessionCacheClient returns the session registry client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
