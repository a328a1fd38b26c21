package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"goRaceServer/config"
	"goRaceServer/game"

	"github.com/redis/go-redis/v9"
)

var (
	// RedisClient is the global Redis client instance
	RedisClient *redis.Client
)

// InitRedis initializes the Redis client connection
func InitRedis() error {
	log.Println("🔌 Connecting to Redis...")

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisURL,
		Password:     redisPassword,
		DB:           redisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("✅ Redis connected successfully - URL: %s", redisURL)
	return nil
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		log.Println("🔌 Closing Redis connection...")
		return RedisClient.Close()
	}
	return nil
}

/* =========================
   LEADERBOARD CACHE
   Redis Key: leaderboard:{page}:{limit} -> JSON array
========================= */

// CacheLeaderboardPage stores one serialized leaderboard page with a short TTL.
func CacheLeaderboardPage(ctx context.Context, page, limit int, entries []LeaderboardEntry) error {
	if RedisClient == nil {
		return nil
	}

	key := fmt.Sprintf(config.RedisLeaderboardKey, page, limit)
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}

	if err := RedisClient.Set(ctx, key, data, config.LeaderboardCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache leaderboard: %w", err)
	}
	return nil
}

// GetCachedLeaderboardPage returns a cached page, or nil on miss.
func GetCachedLeaderboardPage(ctx context.Context, page, limit int) ([]LeaderboardEntry, error) {
	if RedisClient == nil {
		return nil, nil
	}

	key := fmt.Sprintf(config.RedisLeaderboardKey, page, limit)
	data, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached leaderboard: %w", err)
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached leaderboard: %w", err)
	}
	return entries, nil
}

/* =========================
   ACTIVE EVENT MIRROR
   Redis Key: event:current -> JSON event
========================= */

// CacheCurrentEvent mirrors the active event for other processes to read.
func CacheCurrentEvent(ctx context.Context, event *game.Event) error {
	if RedisClient == nil {
		return nil
	}

	if event == nil {
		return RedisClient.Del(ctx, config.RedisEventKey).Err()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := RedisClient.Set(ctx, config.RedisEventKey, data, config.EventCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache event: %w", err)
	}
	return nil
}

/* =========================
   RATE LIMIT COUNTERS
   Redis Key: ratelimit:{scope}:{ip} -> request count
========================= */

// CountRequest bumps the fixed-window counter for an IP within a scope and
// returns the updated count. The window TTL is set with the first request.
func CountRequest(ctx context.Context, scope, ip string, window time.Duration) (int64, error) {
	if RedisClient == nil {
		return 0, nil // limiter disabled without Redis
	}

	key := fmt.Sprintf(config.RedisRateLimitKey, scope, ip)

	count, err := RedisClient.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count request: %w", err)
	}
	if count == 1 {
		RedisClient.Expire(ctx, key, window)
	}
	return count, nil
}

/* =========================
   HEALTH CHECK
========================= */

// HealthCheck performs a Redis health check
func HealthCheck(ctx context.Context) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	return RedisClient.Ping(ctx).Err()
}
