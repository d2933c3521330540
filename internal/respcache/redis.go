package respcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/core/observability"
	"github.com/kiyer/argoquery/internal/respcache/keys"
)

// Redis is the shared driver. Responses are stored as JSON; Flush scans
// the response keyspace rather than issuing FLUSHDB so other tenants of
// the instance are untouched.
type Redis struct {
	rdb       *redis.Client
	opTimeout time.Duration
}

var _ Interface = (*Redis)(nil)

func NewRedis(ctx context.Context, addr string, opTimeout time.Duration) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	if opTimeout <= 0 {
		opTimeout = 250 * time.Millisecond
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     64,
		MinIdleConns: 4,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	observability.ObserveUpstreamLatency("redis_ping", time.Since(start).Seconds())
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{rdb: rdb, opTimeout: opTimeout}, nil
}

// NewRedisWithClient wires an existing client, used by tests.
func NewRedisWithClient(rdb *redis.Client, opTimeout time.Duration) *Redis {
	if opTimeout <= 0 {
		opTimeout = 250 * time.Millisecond
	}
	return &Redis{rdb: rdb, opTimeout: opTimeout}
}

func (r *Redis) Get(ctx context.Context, key string) (*model.Response, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	start := time.Now()
	raw, err := r.rdb.Get(ctx, key).Bytes()
	observability.ObserveUpstreamLatency("redis_get", time.Since(start).Seconds())
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var resp model.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		// poisoned entry; drop it rather than serving garbage
		_ = r.rdb.Del(ctx, key).Err()
		return nil, false, fmt.Errorf("decode cached response: %w", err)
	}
	return &resp, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, resp *model.Response, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	start := time.Now()
	err = r.rdb.Set(ctx, key, raw, ttl).Err()
	observability.ObserveUpstreamLatency("redis_set", time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		ks, next, err := r.rdb.Scan(ctx, cursor, keys.Prefix+"*", 200).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(ks) > 0 {
			if err := r.rdb.Del(ctx, ks...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (r *Redis) Close() error { return r.rdb.Close() }
