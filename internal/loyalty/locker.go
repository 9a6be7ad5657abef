package loyalty

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// redeemLockTTL bounds how long a crashed process can hold a redis lock.
const redeemLockTTL = 10 * time.Second

// memberLocker serializes mutating loyalty operations per member. The store
// offers no idempotency key, so a double submit that slips past the UI guard
// must be stopped here before it can double-debit a balance.
type memberLocker interface {
	// Acquire takes the lock for a member. It returns a release func, or an
	// error when the lock is already held.
	Acquire(ctx context.Context, memberID uint64) (func(), error)
}

// redisLocker implements memberLocker with redis SET NX, covering deployments
// that run more than one API instance.
type redisLocker struct {
	client *redis.Client
}

func newRedisLocker(client *redis.Client) *redisLocker {
	return &redisLocker{client: client}
}

// Acquire takes a short-lived NX lock keyed by member ID.
func (l *redisLocker) Acquire(ctx context.Context, memberID uint64) (func(), error) {
	key := fmt.Sprintf("loyalty:redeem-lock:%d", memberID)
	ok, errSet := l.client.SetNX(ctx, key, "1", redeemLockTTL).Result()
	if errSet != nil {
		return nil, fmt.Errorf("loyalty: acquire redis lock: %w", errSet)
	}
	if !ok {
		return nil, ErrRedeemInFlight
	}
	return func() {
		// Best-effort release; the TTL cleans up after a lost connection.
		_ = l.client.Del(context.Background(), key).Err()
	}, nil
}

// localLocker implements memberLocker with an in-process mutex map for
// single-instance deployments without redis.
type localLocker struct {
	mu      sync.Mutex
	members map[uint64]struct{}
}

func newLocalLocker() *localLocker {
	return &localLocker{members: make(map[uint64]struct{})}
}

// Acquire marks the member busy, failing when a redemption is in flight.
func (l *localLocker) Acquire(_ context.Context, memberID uint64) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.members[memberID]; held {
		return nil, ErrRedeemInFlight
	}
	l.members[memberID] = struct{}{}
	return func() {
		l.mu.Lock()
		delete(l.members, memberID)
		l.mu.Unlock()
	}, nil
}
