package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker fences item claims when several registry replicas share
// one item namespace. The in-process ledger stays authoritative for a single
// instance; the locker only serializes the check-and-claim window.
type DistributedLocker interface {
	// Lock acquires the lock for a key, blocking until acquired or the
	// context is canceled. The TTL bounds how long a crashed holder can
	// keep the key. The returned UnlockFunc MUST be called to release.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
