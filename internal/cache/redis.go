package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const generationPrefix = "report-gen:"

// RedisStore shares cached reports and generations between instances.
type RedisStore struct {
	client *redis.Client
	locker *redislock.Client
	ttl    time.Duration
}

// NewRedisStore uses client for entries and for the report computation lock.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		locker: redislock.New(client),
		ttl:    ttl,
	}
}

// NewRedisClient connects to addr and checks it answers.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: 100,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

var (
	_ Store  = (*RedisStore)(nil)
	_ Locker = (*RedisStore)(nil)
)

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *RedisStore) Generation(ctx context.Context, ownerID string) (uint64, error) {
	gen, err := s.client.Get(ctx, generationPrefix+ownerID).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (s *RedisStore) Bump(ctx context.Context, ownerID string) error {
	return s.client.Incr(ctx, generationPrefix+ownerID).Err()
}

func (s *RedisStore) Lock(ctx context.Context, key string, ttl time.Duration) (func(context.Context), error) {
	lock, err := s.locker.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotLocked
	}
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) {
		_ = lock.Release(ctx)
	}, nil
}
