package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testClientStore(t *testing.T) *IdempotencyStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr, Timeout: 2 * time.Second})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client)
}

func TestIdempotencyStore_Lifecycle(t *testing.T) {
	s := testClientStore(t)
	ctx := context.Background()
	key := "order:test:" + uuid.NewString()
	t.Cleanup(func() { _ = s.Release(context.Background(), key) })

	if _, claimed, err := s.Claim(ctx, key); err != nil || !claimed {
		t.Fatalf("first claim: claimed=%v err=%v", claimed, err)
	}
	if id, claimed, err := s.Claim(ctx, key); err != nil || claimed || id != "" {
		t.Fatalf("in flight: id=%q claimed=%v err=%v", id, claimed, err)
	}
	if err := s.Complete(ctx, key, "order-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if id, claimed, err := s.Claim(ctx, key); err != nil || claimed || id != "order-1" {
		t.Fatalf("completed: id=%q claimed=%v err=%v", id, claimed, err)
	}
	if err := s.Release(ctx, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, claimed, err := s.Claim(ctx, key); err != nil || !claimed {
		t.Fatalf("after release: claimed=%v err=%v", claimed, err)
	}
}

func TestIdempotencyStore_KeysExpire(t *testing.T) {
	s := testClientStore(t)
	ctx := context.Background()
	key := "order:test:" + uuid.NewString()

	if _, _, err := s.Claim(ctx, key); err != nil {
		t.Fatalf("claim: %v", err)
	}
	ttl, err := s.client.TTL(ctx, keyPrefix+key).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > idempotencyTTL {
		t.Errorf("expected a TTL within %s, got %s", idempotencyTTL, ttl)
	}
	_ = s.Release(ctx, key)
}
