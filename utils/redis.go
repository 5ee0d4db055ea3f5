package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the shared Redis client used for refresh-token tracking
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func refreshKey(userID uint) string {
	return fmt.Sprintf("refresh_token:%d", userID)
}

// StoreRefreshToken records the active refresh token for a user.
// Logout deletes the key, which invalidates any outstanding token.
func StoreRefreshToken(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Set(ctx, refreshKey(userID), token, ttl).Err()
}

// ValidateRefreshToken checks the presented token against the stored one
func ValidateRefreshToken(ctx context.Context, userID uint, token string) error {
	if RedisClient == nil {
		return nil
	}
	stored, err := RedisClient.Get(ctx, refreshKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return errors.New("refresh token revoked")
	}
	if err != nil {
		return err
	}
	if stored != token {
		return errors.New("refresh token mismatch")
	}
	return nil
}

// RevokeRefreshToken removes the stored token (logout)
func RevokeRefreshToken(ctx context.Context, userID uint) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Del(ctx, refreshKey(userID)).Err()
}
