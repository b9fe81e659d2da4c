package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const (
	// Every page is stored under this prefix so Clear only touches pages.
	RedisKeyPrefix = "page_cache:"

	clearScanBatch = 100
)

type RedisPageCache struct {
	inner *redis.Client
}

// GetRedisPageCache connects to the redis configured by env and pings it.
func GetRedisPageCache(ctx context.Context) (*RedisPageCache, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "fail to ping redis")
	}
	return NewRedisPageCache(redisClient), nil
}

func NewRedisPageCache(client *redis.Client) *RedisPageCache {
	return &RedisPageCache{inner: client}
}

func redisKey(key string) string {
	return RedisKeyPrefix + key
}

func (r *RedisPageCache) Get(ctx context.Context, key string) (*Page, bool, error) {
	raw, err := r.inner.Get(ctx, redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "fail to read cached page")
	}
	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, errors.Wrap(err, "fail to decode cached page")
	}
	return &page, true, nil
}

func (r *RedisPageCache) Set(ctx context.Context, key string, page *Page, ttl time.Duration) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return errors.Wrap(err, "fail to encode page")
	}
	return errors.Wrap(r.inner.Set(ctx, redisKey(key), raw, ttl).Err(), "fail to write cached page")
}

func (r *RedisPageCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.inner.Scan(ctx, cursor, RedisKeyPrefix+"*", clearScanBatch).Result()
		if err != nil {
			return errors.Wrap(err, "fail to scan cached pages")
		}
		if len(keys) > 0 {
			if err := r.inner.Del(ctx, keys...).Err(); err != nil {
				return errors.Wrap(err, "fail to delete cached pages")
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
