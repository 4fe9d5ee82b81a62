package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/zyedidia/generic/cache"
)

// DefaultMaxEntries bounds a Memory backend unless SetMaxEntries says
// otherwise.
const DefaultMaxEntries = 4096

// Memory is an in-process Backend. Entries expire after ttl; a zero ttl
// keeps them until they are evicted. At most MaxEntries solutions are kept,
// the least recently used going first once expired ones are gone.
type Memory struct {
	mu      sync.Mutex
	entries *lru.Cache[string, memEntry]
	locks   map[string]*keyLock
	ttl     time.Duration
	now     func() time.Time
}

type memEntry struct {
	sol     Solution
	expires time.Time // zero means never
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// keyLock is a one-slot semaphore shared by everyone waiting on a hash.
type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewMemory returns an empty in-memory backend.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: lru.New[string, memEntry](DefaultMaxEntries),
		locks:   make(map[string]*keyLock),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the time source used for expiry.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// SetMaxEntries changes the entry bound, evicting down to n at once.
// Values below one are raised to one.
func (m *Memory) SetMaxEntries(n int) {
	if n < 1 {
		n = 1
	}
	m.mu.Lock()
	m.entries.Resize(n)
	m.mu.Unlock()
}

// Get implements Cache. Expired entries are dropped on read.
func (m *Memory) Get(_ context.Context, hash string) (Solution, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries.Get(hash)
	if !ok {
		return Solution{}, false, nil
	}
	if e.expired(m.now()) {
		m.entries.Remove(hash)
		return Solution{}, false, nil
	}

	return e.sol, true, nil
}

// Set implements Cache. A full cache first drops its expired entries, then
// the least recently used one.
func (m *Memory) Set(_ context.Context, hash string, s Solution) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e := memEntry{sol: s}
	if m.ttl > 0 {
		e.expires = now.Add(m.ttl)
		if m.entries.Size() >= m.entries.Capacity() {
			m.sweep(now)
		}
	}
	m.entries.Put(hash, e)

	return nil
}

// sweep removes every expired entry. Callers hold m.mu.
func (m *Memory) sweep(now time.Time) {
	var stale []string
	m.entries.Each(func(hash string, e memEntry) {
		if e.expired(now) {
			stale = append(stale, hash)
		}
	})
	for _, hash := range stale {
		m.entries.Remove(hash)
	}
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries.Size()
}

// Lock implements Locker.
func (m *Memory) Lock(ctx context.Context, hash string) (func() error, error) {
	m.mu.Lock()
	kl := m.locks[hash]
	if kl == nil {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		m.locks[hash] = kl
	}
	kl.refs++
	m.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(hash, kl)
		return nil, fmt.Errorf("%w: %s: %v", ErrLockFailed, hash, ctx.Err())
	}

	var once sync.Once
	return func() error {
		once.Do(func() {
			<-kl.ch
			m.release(hash, kl)
		})
		return nil
	}, nil
}

func (m *Memory) release(hash string, kl *keyLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(m.locks, hash)
	}
}
