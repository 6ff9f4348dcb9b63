package orbitstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/lhagemann/symred/pkg/observability"
	"github.com/lhagemann/symred/pkg/task"
)

// RedisStore keeps one hash per batch: field = mapping key, value = index.
// Suitable for sharing representatives between repeated runs on one data
// set.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisConfig configures a Redis-backed store.
type RedisConfig struct {
	Addr     string // host:port, default "localhost:6379"
	Password string
	DB       int
}

// NewRedisStore connects to Redis and namespaces all records under the
// batch identifier.
func NewRedisStore(ctx context.Context, cfg RedisConfig, batchID string) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, key: "symred:orbits:" + batchID}, nil
}

// Lookup implements Store.
func (s *RedisStore) Lookup(ctx context.Context, m task.Mapping) (int, bool, error) {
	val, err := s.client.HGet(ctx, s.key, m.Key()).Result()
	if err == redis.Nil {
		observability.Store().OnStoreMiss("redis")
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	idx, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt index %q: %w", val, err)
	}
	observability.Store().OnStoreHit("redis")
	return idx, true, nil
}

// Insert implements Store.
func (s *RedisStore) Insert(ctx context.Context, m task.Mapping) (int, bool, error) {
	if idx, ok, err := s.Lookup(ctx, m); err != nil || ok {
		return idx, false, err
	}

	size, err := s.client.HLen(ctx, s.key).Result()
	if err != nil {
		return 0, false, err
	}
	idx := int(size)
	if err := s.client.HSet(ctx, s.key, m.Key(), strconv.Itoa(idx)).Err(); err != nil {
		return 0, false, err
	}
	observability.Store().OnStoreInsert("redis")
	return idx, true, nil
}

// List implements Store.
func (s *RedisStore) List(ctx context.Context) ([]Record, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}

	res := make([]Record, len(fields))
	for key, val := range fields {
		idx, err := strconv.Atoi(val)
		if err != nil || idx < 0 || idx >= len(res) {
			return nil, fmt.Errorf("corrupt record %q -> %q", key, val)
		}
		// Mapping keys are bare comma-separated indices.
		m, err := task.ParseAllocation("[" + key + "]")
		if err != nil {
			return nil, fmt.Errorf("corrupt record %q: %w", key, err)
		}
		res[idx] = Record{Index: idx, Mapping: m}
	}
	return res, nil
}

// Close implements Store.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
