package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

// NewRedisStore shares keys across replicas using SET NX with a TTL.
func NewRedisStore(rdb goredis.UniversalClient, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: normalizeTTL(ttl)}
}

func (s *redisStore) Begin(ctx context.Context, key string) (*Record, error) {
	pending, err := json.Marshal(Record{State: StatePending, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	ok, err := s.rdb.SetNX(ctx, key, pending, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("idempotency setnx: %w", err)
	}
	if ok {
		return nil, nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		// expired between SETNX and GET; let the caller retry the claim
		return nil, ErrInFlight
	}
	if err != nil {
		return nil, fmt.Errorf("idempotency get: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("idempotency decode: %w", err)
	}
	if rec.State == StateCompleted {
		return &rec, nil
	}
	return nil, ErrInFlight
}

func (s *redisStore) Complete(ctx context.Context, key string, result []byte) error {
	raw, err := json.Marshal(Record{State: StateCompleted, Result: result, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

func (s *redisStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
