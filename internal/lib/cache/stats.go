// Package cache keeps computed blog statistics in Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/code2244/bloglist/internal/lib/stats"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// StatsKey is the Redis key the summary is stored under.
	StatsKey = "bloglist:stats"

	// StatsGenerationKey counts blog writes. A summary computed from a read
	// that started before the latest write must not be stored.
	StatsGenerationKey = "bloglist:stats:gen"
)

// StatsCache stores the stats summary as JSON with a TTL.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached summary, or nil without an error on a miss.
func (c *StatsCache) Get(ctx context.Context) (*stats.Summary, error) {
	data, err := c.client.Get(ctx, StatsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get cached stats")
	}

	var summary stats.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, errors.Wrap(err, "decode cached stats")
	}
	return &summary, nil
}

// Generation returns the current write generation; 0 before the first write.
func (c *StatsCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, StatsGenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "get stats generation")
	}
	return gen, nil
}

// SetIfGeneration stores summary only while the write generation still
// equals gen. It reports whether the summary was stored; a write that
// landed in between leaves the cache empty instead of stale.
func (c *StatsCache) SetIfGeneration(ctx context.Context, gen int64, summary *stats.Summary) (bool, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return false, errors.Wrap(err, "encode stats")
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, StatsGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, StatsKey, data, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, StatsGenerationKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "set cached stats")
	}
	return stored, nil
}

// Invalidate bumps the write generation and drops the cached summary in
// one transaction. Deleting a missing key is not an error.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, StatsGenerationKey)
		pipe.Del(ctx, StatsKey)
		return nil
	})
	return errors.Wrap(err, "invalidate cached stats")
}
