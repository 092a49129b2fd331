// Package bloom flags repeated share-form submissions.
package bloom

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// submissionsKey is the RedisBloom filter key for share submissions.
const submissionsKey = "share:submissions"

// Filter answers "was this key seen before?" and records it.
type Filter interface {
	Seen(ctx context.Context, key string) bool
}

// commander is the part of redis.UniversalClient the filter uses.
type commander interface {
	Do(ctx context.Context, args ...any) *redis.Cmd
}

// RedisFilter is backed by a RedisBloom filter (BF.* commands, provided by
// redis-stack). False positives are possible, false negatives are not.
type RedisFilter struct {
	rdb    commander
	logger *zap.Logger
}

// NewRedisFilter reserves the filter. Reserving an existing filter fails
// and is only logged, so it is safe to call on every start.
func NewRedisFilter(ctx context.Context, rdb redis.UniversalClient, logger *zap.Logger) *RedisFilter {
	return newRedisFilter(ctx, rdb, logger)
}

func newRedisFilter(ctx context.Context, rdb commander, logger *zap.Logger) *RedisFilter {
	if err := rdb.Do(ctx, "BF.RESERVE", submissionsKey, 0.001, 100_000).Err(); err != nil {
		logger.Debug("bloom: reserve submissions (may already exist)", zap.Error(err))
	}
	return &RedisFilter{rdb: rdb, logger: logger}
}

// Seen adds key to the filter and reports whether it was probably present
// already. Redis errors are logged and treated as "not seen".
func (f *RedisFilter) Seen(ctx context.Context, key string) bool {
	res := f.rdb.Do(ctx, "BF.ADD", submissionsKey, key)
	if res.Err() != nil {
		f.logger.Warn("bloom: BF.ADD failed", zap.Error(res.Err()))
		return false
	}
	// BF.ADD replies with an integer on older RedisBloom and a boolean on
	// newer servers; 1/true means the key was new.
	if n, err := res.Int(); err == nil {
		return n == 0
	}
	added, err := res.Bool()
	if err != nil {
		f.logger.Warn("bloom: unexpected BF.ADD reply", zap.Error(err))
		return false
	}
	return !added
}

// MemoryFilter is an exact in-process set used when Redis is not configured.
type MemoryFilter struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryFilter() *MemoryFilter {
	return &MemoryFilter{seen: make(map[string]struct{})}
}

func (f *MemoryFilter) Seen(_ context.Context, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seen[key]; ok {
		return true
	}
	f.seen[key] = struct{}{}
	return false
}
