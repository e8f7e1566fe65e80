package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateManager remembers how far a sync got so a rerun can resume.
type StateManager interface {
	GetLastSyncedPage(ctx context.Context, scope string) (int, error)
	SetLastSyncedPage(ctx context.Context, scope string, page int) error
	Reset(ctx context.Context, scope string) error
}

// RedisClient is the part of *redis.Client the state manager uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisStateManager struct {
	redisClient RedisClient
	keyPrefix   string
}

func NewRedisStateManager(redisClient RedisClient) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		keyPrefix:   "animeapi:sync:page:",
	}
}

func (s *redisStateManager) GetLastSyncedPage(ctx context.Context, scope string) (int, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+scope).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get last synced page for %s: %w", scope, err)
	}

	page, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid page value %q for %s: %w", val, scope, err)
	}

	return page, nil
}

func (s *redisStateManager) SetLastSyncedPage(ctx context.Context, scope string, page int) error {
	if err := s.redisClient.Set(ctx, s.keyPrefix+scope, page, 0).Err(); err != nil {
		return fmt.Errorf("failed to set last synced page for %s: %w", scope, err)
	}
	return nil
}

func (s *redisStateManager) Reset(ctx context.Context, scope string) error {
	if err := s.redisClient.Del(ctx, s.keyPrefix+scope).Err(); err != nil {
		return fmt.Errorf("failed to reset sync state for %s: %w", scope, err)
	}
	return nil
}
