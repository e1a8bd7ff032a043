package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/testutil"
)

func TestRunLocker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	first := NewRunLocker(client)
	second := NewRunLocker(client)

	ok, err := first.TryLock(ctx, "inst-1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first TryLock: ok=%v err=%v", ok, err)
	}

	ok, err = second.TryLock(ctx, "inst-1", time.Minute)
	if err != nil {
		t.Fatalf("second TryLock: %v", err)
	}
	if ok {
		t.Fatal("second TryLock should fail while the lock is held")
	}

	ok, err = second.TryLock(ctx, "inst-2", time.Minute)
	if err != nil || !ok {
		t.Fatalf("other installation should lock independently: ok=%v err=%v", ok, err)
	}

	if err := second.Unlock(ctx, "inst-1"); !errors.Is(err, domain.ErrLockNotAcquired) {
		t.Errorf("unlocking a lock we do not hold: expected ErrLockNotAcquired, got %v", err)
	}

	if err := first.Unlock(ctx, "inst-1"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	ok, err = second.TryLock(ctx, "inst-1", time.Minute)
	if err != nil || !ok {
		t.Errorf("TryLock after release: ok=%v err=%v", ok, err)
	}
}

func TestRunLockerDoesNotReleaseForeignLock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	locker := NewRunLocker(client)

	ok, err := locker.TryLock(ctx, "inst-1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}

	// Simulate expiry followed by another holder.
	if err := client.Set(ctx, "reminder:lock:inst-1", "someone-else", time.Minute).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	if err := locker.Unlock(ctx, "inst-1"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	val, err := client.Get(ctx, "reminder:lock:inst-1").Result()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if val != "someone-else" {
		t.Errorf("foreign lock was released, value now %q", val)
	}
}
