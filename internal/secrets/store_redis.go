package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"idrelay/pkg/platform/sentinel"
)

// keyPrefix namespaces secret keys in the shared Redis instance.
const keyPrefix = "idrelay:secret:"

// RedisStore retrieves secrets from Redis. The operations team provisions the
// keys out of band; the store is read-only.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, name string) (string, error) {
	value, err := s.client.Get(ctx, keyPrefix+name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("secret %q: %w", name, sentinel.ErrNotFound)
		}
		return "", fmt.Errorf("get secret %q: %w", name, err)
	}
	return value, nil
}
