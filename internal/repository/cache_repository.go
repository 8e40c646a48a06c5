package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheRepository stores JSON snapshots in redis. A nil Redis client turns
// every call into a miss so callers never branch on whether caching is on.
type CacheRepository struct {
	Redis *redis.Client
}

func NewCacheRepository(rdb *redis.Client) *CacheRepository {
	return &CacheRepository{Redis: rdb}
}

func LeaderboardKey(courseID uint) string {
	return fmt.Sprintf("eduverse:leaderboard:%d", courseID)
}

func SimilarCoursesKey(courseID uint) string {
	return fmt.Sprintf("eduverse:similar:%d", courseID)
}

func (r *CacheRepository) Enabled() bool {
	return r != nil && r.Redis != nil
}

// GetJSON reports whether key was found and decoded into dst.
func (r *CacheRepository) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	if !r.Enabled() {
		return false, nil
	}
	val, err := r.Redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *CacheRepository) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	if !r.Enabled() {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, key, data, ttl).Err()
}

func (r *CacheRepository) Delete(ctx context.Context, keys ...string) error {
	if !r.Enabled() || len(keys) == 0 {
		return nil
	}
	return r.Redis.Del(ctx, keys...).Err()
}

func (r *CacheRepository) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	return r.Redis.Ping(ctx).Err()
}
