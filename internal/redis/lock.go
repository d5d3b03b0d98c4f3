package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore provides short-lived assignment locks so two dispatchers cannot
// hand the same driver two reservations in the same instant. The SQL
// compare-and-swap on reservation status remains authoritative; the lock only
// narrows the race window.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireDriverLock attempts to take the assignment lock for a driver.
// Returns true if acquired, false if another assignment holds it.
func (s *LockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:assign:driver:%s", driverID)

	return s.client.SetNX(ctx, key, "1", ttl).Result()
}

// ReleaseDriverLock releases the assignment lock for a driver.
func (s *LockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	key := fmt.Sprintf("lock:assign:driver:%s", driverID)

	return s.client.Del(ctx, key).Err()
}
