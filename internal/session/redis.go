package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxUpdateRetries = 50
	retryBaseDelay   = 2 * time.Millisecond
	retryMaxDelay    = 100 * time.Millisecond
)

// RedisStore keeps each session as a JSON value under session:{id} with a
// TTL, so state survives API restarts but still expires with the session.
type RedisStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisStore(rdb redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(id string) string {
	return "session:" + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (State, error) {
	return s.read(ctx, s.rdb, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) read(ctx context.Context, c getter, id string) (State, error) {
	// redis/go-redis/v9: redis.Nil means the session is new or has expired.
	raw, err := c.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewState(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("get session %s: %w", id, err)
	}
	st := NewState()
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return st, nil
}

// Update runs fn inside an optimistic WATCH/MULTI transaction and retries
// when another request changed the session concurrently.
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*State)) (State, error) {
	var out State
	txf := func(tx *redis.Tx) error {
		st, err := s.read(ctx, tx, id)
		if err != nil {
			return err
		}
		fn(&st)
		data, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", id, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(id), data, s.ttl)
			return nil
		})
		if err == nil {
			out = st
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := s.rdb.Watch(ctx, txf, key(id))
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return State{}, err
		}
		select {
		case <-time.After(retryDelay(attempt)):
		case <-ctx.Done():
			return State{}, fmt.Errorf("update session %s: %w", id, ctx.Err())
		}
	}
	return State{}, fmt.Errorf("update session %s: too much contention", id)
}

// retryDelay is a full-jitter exponential backoff: a random duration in
// [0, min(retryMaxDelay, retryBaseDelay*2^attempt)).
func retryDelay(attempt int) time.Duration {
	d := retryMaxDelay
	if attempt < 16 {
		d = min(retryMaxDelay, retryBaseDelay<<attempt)
	}
	return rand.N(d)
}
