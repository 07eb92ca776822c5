package idempotency

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Runs only with TEST_REDIS_ADDR set, like the Postgres-gated repo tests.
func TestRedisStoreLifecycle(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}

	s := NewRedisStore(rdb, time.Minute)
	key := Key("checkout", uuid.NewString(), "k-1")
	t.Cleanup(func() { _ = rdb.Del(ctx, key).Err() })

	rec, err := s.Begin(ctx, key)
	if err != nil || rec != nil {
		t.Fatalf("Begin fresh: want nil,nil got=%+v,%v", rec, err)
	}
	if _, err := s.Begin(ctx, key); !errors.Is(err, ErrInFlight) {
		t.Fatalf("Begin in flight: want ErrInFlight got=%v", err)
	}
	if err := s.Release(ctx, key); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if rec, err := s.Begin(ctx, key); err != nil || rec != nil {
		t.Fatalf("Begin after release: want nil,nil got=%+v,%v", rec, err)
	}
	if err := s.Complete(ctx, key, []byte(`{"order_ids":[]}`)); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	rec, err = s.Begin(ctx, key)
	if err != nil || rec == nil || rec.State != StateCompleted || string(rec.Result) != `{"order_ids":[]}` {
		t.Fatalf("Begin completed: got=%+v,%v", rec, err)
	}
	ttl, err := rdb.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("completed key should keep a ttl: got=%v,%v", ttl, err)
	}
}
