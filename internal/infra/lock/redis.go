package lock

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "agenda-submission:lock:"

// Redis is a lock table shared across replicas, backed by SET NX. The TTL
// bounds how long a crashed replica can keep a key busy.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) TryAcquire(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, keyPrefix+key, "1", r.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "lock.Redis.TryAcquire: SETNX failed")
	}
	return ok, nil
}

func (r *Redis) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "lock.Redis.Release: DEL failed")
	}
	return nil
}
