package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "portfolio:session:"

// RedisStore keeps tokens in Redis with a TTL per key.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context, id string) (string, bool, error) {
	token, err := r.client.Get(ctx, redisKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "redis get")
	}
	return token, true, nil
}

func (r *RedisStore) Save(ctx context.Context, id, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, redisKeyPrefix+id, token, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}
