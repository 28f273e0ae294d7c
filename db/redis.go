package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/dev-tanmaydas/custos/api/logging"
	"github.com/dev-tanmaydas/custos/api/model"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

// CachePermissionsDoc stores a resolved permissions document with the
// configured TTL, sharing it across evaluation sessions.
func CachePermissionsDoc(ctx context.Context, doc *model.PermissionsDoc) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal permissions document: %w", err)
	}

	key := fmt.Sprintf("permissions:%s", doc.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, docJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache permissions document: %w", err)
	}

	logger.Debug("Permissions document cached successfully", zap.String("resourceID", doc.ID))
	return nil
}

// GetCachedPermissionsDoc returns the cached document for a resource id,
// or nil on a miss.
func GetCachedPermissionsDoc(ctx context.Context, resourceID string) (*model.PermissionsDoc, error) {
	key := fmt.Sprintf("permissions:%s", resourceID)
	docJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Permissions document not found in cache", zap.String("resourceID", resourceID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get permissions document from cache: %w", err)
	}

	var doc model.PermissionsDoc
	err = json.Unmarshal([]byte(docJSON), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal permissions document: %w", err)
	}

	logger.Debug("Permissions document retrieved from cache", zap.String("resourceID", resourceID))
	return &doc, nil
}

// DeleteCachedPermissionsDoc evicts a resource's document, for callers
// reacting to permission changes in the backing store.
func DeleteCachedPermissionsDoc(ctx context.Context, resourceID string) error {
	key := fmt.Sprintf("permissions:%s", resourceID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete permissions document from cache: %w", err)
	}
	logger.Debug("Permissions document deleted from cache", zap.String("resourceID", resourceID))
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
