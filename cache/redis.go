package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	// defaultPrefix namespaces every key this package writes.
	defaultPrefix = "mazepath"

	solveKeyFmt = "%s:solve:%s"
	lockKeyFmt  = "%s:solve:%s:lock"

	// lockExpiry bounds how long a crashed holder can block others.
	lockExpiry = 30 * time.Second

	// lockRetryDelay is the pause between acquisition attempts.
	lockRetryDelay = 100 * time.Millisecond
)

// Redis is a Backend over a Redis server. Solutions are stored as JSON with
// the configured TTL; locks are redsync mutexes.
type Redis struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	prefix string

	// lockWait is how long Lock keeps retrying a held lock.
	lockWait time.Duration
}

// NewRedis wraps client. A zero ttl stores entries without expiry.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	pool := goredis.NewPool(client)
	return &Redis{
		client:   client,
		locker:   redsync.New(pool),
		ttl:      ttl,
		prefix:   defaultPrefix,
		lockWait: lockExpiry,
	}
}

// SetLockWait changes how long Lock waits for a lock held elsewhere. The
// default matches the lock expiry, so a waiter outlasts a crashed holder.
func (r *Redis) SetLockWait(d time.Duration) {
	r.lockWait = d
}

// LockWait reports the current wait budget of Lock.
func (r *Redis) LockWait() time.Duration { return r.lockWait }

// Get implements Cache.
func (r *Redis) Get(ctx context.Context, hash string) (Solution, bool, error) {
	raw, err := r.client.Get(ctx, r.solveKey(hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Solution{}, false, nil
	}
	if err != nil {
		return Solution{}, false, fmt.Errorf("cache: redis get: %w", err)
	}

	var s Solution
	if err := json.Unmarshal(raw, &s); err != nil {
		return Solution{}, false, fmt.Errorf("cache: decoding %s: %w", hash, err)
	}

	return s, true, nil
}

// Set implements Cache.
func (r *Redis) Set(ctx context.Context, hash string, s Solution) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cache: encoding %s: %w", hash, err)
	}
	if err := r.client.Set(ctx, r.solveKey(hash), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}

	return nil
}

// Lock implements Locker with a redsync mutex per hash. Attempts are spaced
// lockRetryDelay apart for up to LockWait, or until ctx is done.
func (r *Redis) Lock(ctx context.Context, hash string) (func() error, error) {
	tries := int(r.lockWait / lockRetryDelay)
	if tries < 1 {
		tries = 1
	}
	mutex := r.locker.NewMutex(fmt.Sprintf(lockKeyFmt, r.prefix, hash),
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(tries),
		redsync.WithRetryDelay(lockRetryDelay),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLockFailed, hash, err)
	}

	return func() error {
		ok, err := mutex.Unlock()
		if err != nil {
			return fmt.Errorf("cache: releasing lock %s: %w", hash, err)
		}
		if !ok {
			return fmt.Errorf("cache: releasing lock %s: lock no longer held", hash)
		}
		return nil
	}, nil
}

func (r *Redis) solveKey(hash string) string {
	return fmt.Sprintf(solveKeyFmt, r.prefix, hash)
}
