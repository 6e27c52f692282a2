package keyvalue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCommands is the part of the go-redis client a RedisBucket uses.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisBucket stores entries in Redis under a common key prefix.
type RedisBucket struct {
	client redisCommands
	prefix string
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisBucket connects to Redis and checks the connection with PING.
func NewRedisBucket(ctx context.Context, opts RedisOptions) (*RedisBucket, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisBucket(client, opts.Prefix), nil
}

func newRedisBucket(client redisCommands, prefix string) *RedisBucket {
	return &RedisBucket{client: client, prefix: prefix}
}

func (b *RedisBucket) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %q in Redis: %w", key, err)
	}

	return nil
}

func (b *RedisBucket) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get %q from Redis: %w", key, err)
	}

	return data, nil
}

func (b *RedisBucket) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, b.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %q from Redis: %w", key, err)
	}

	return nil
}

func (b *RedisBucket) Close() error {
	return b.client.Close()
}
