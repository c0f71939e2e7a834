package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisTokenStorage backs the anti-forgery store with redis, letting
// tokens survive process restarts and be shared between replicas.
// Expiry is redis-native; no sweep task is needed.
type RedisTokenStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTokenStorage(client *redis.Client, ttl time.Duration) *RedisTokenStorage {
	return &RedisTokenStorage{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisTokenStorage) key(token string) string {
	return "csrf:" + token
}

func (r *RedisTokenStorage) Issue() string {
	token := uuid.NewString()
	if err := r.client.Set(context.Background(), r.key(token), 1, r.ttl).Err(); err != nil {
		slog.Error(err.Error())
	}
	return token
}

func (r *RedisTokenStorage) Consume(token string) bool {
	err := r.client.GetDel(context.Background(), r.key(token)).Err()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Error(err.Error())
		}
		return false
	}
	return true
}
