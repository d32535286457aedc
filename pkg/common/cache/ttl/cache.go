// Package ttl provides a generic in-process cache whose entries expire after
// a per-entry time-to-live.
//
// Expiry is enforced two ways. Get treats an expired entry as absent and
// removes it, which is all correctness depends on. A janitor goroutine also
// sweeps expired entries on a fixed interval to bound memory held by keys
// that are written once and never read again.
//
// All operations share one mutex. Entries are small and critical sections
// short, so a single lock is preferred over per-key locking.
package ttl

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/huynhanx03/codelens/pkg/common/cache"
	"github.com/huynhanx03/codelens/pkg/timer"
)

const (
	// DefaultTTL applies when Set is called without an explicit ttl.
	DefaultTTL = 5 * time.Minute
	// DefaultSweepInterval is the janitor period when Config leaves it zero.
	DefaultSweepInterval = 10 * time.Minute
)

var _ cache.LocalCache[string] = (*Cache[string])(nil)

type cloner[V any] interface {
	Clone() V
}

// Config holds cache configuration.
type Config[V any] struct {
	// Name labels log lines and metrics.
	Name string

	DefaultTTL time.Duration

	// SweepInterval is the janitor period. Zero means DefaultSweepInterval,
	// a negative value disables the janitor.
	SweepInterval time.Duration

	// SingleFlight makes concurrent GetOrSet misses on the same key share one
	// compute call. Off by default: concurrent misses each compute and the
	// last write wins.
	SingleFlight bool

	// Timer is the time provider. If nil, timer.System is used.
	Timer timer.Timer

	Logger *zap.Logger

	// Clone copies a value on the way in and on the way out so callers never
	// share maps, slices or pointers with a stored entry. If nil and V has a
	// Clone() V method, that method is used; otherwise values are copied by
	// assignment.
	Clone func(V) V
}

// Stats is a point-in-time snapshot of the cache.
type Stats struct {
	TotalEntries   int   `json:"totalEntries"`
	ActiveEntries  int   `json:"activeEntries"`
	ExpiredEntries int   `json:"expiredEntries"`
	Hits           int64 `json:"hits"`
	Misses         int64 `json:"misses"`
	Swept          int64 `json:"swept"`
}

// Cache maps string keys to values of type V, each with its own expiry.
type Cache[V any] struct {
	name       string
	defaultTTL time.Duration
	timer      timer.Timer
	logger     *zap.Logger
	group      *singleflight.Group
	clone      func(V) V

	mu    sync.Mutex
	items map[string]entry[V]

	hits   atomic.Int64
	misses atomic.Int64
	swept  atomic.Int64

	stop     chan struct{}
	wg       sync.WaitGroup
	isClosed atomic.Bool
}

// New creates a cache and starts its janitor unless disabled.
func New[V any](cfg Config[V]) *Cache[V] {
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = DefaultTTL
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.Timer == nil {
		cfg.Timer = timer.System()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Clone == nil {
		var zero V
		if _, ok := any(zero).(cloner[V]); ok {
			cfg.Clone = func(v V) V {
				return any(v).(cloner[V]).Clone()
			}
		}
	}

	c := &Cache[V]{
		name:       cfg.Name,
		defaultTTL: cfg.DefaultTTL,
		timer:      cfg.Timer,
		logger:     cfg.Logger,
		clone:      cfg.Clone,
		items:      make(map[string]entry[V]),
		stop:       make(chan struct{}),
	}
	if cfg.SingleFlight {
		c.group = &singleflight.Group{}
	}

	if cfg.SweepInterval > 0 {
		c.wg.Add(1)
		go c.janitor(cfg.SweepInterval)
	}

	return c
}

// Name returns the configured cache name.
func (c *Cache[V]) Name() string {
	return c.name
}

// Get returns the value stored under key if it has not expired. An expired
// entry is removed before reporting the miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c.isClosed.Load() {
		return zero, false
	}

	c.mu.Lock()
	e, ok := c.items[key]
	if ok && e.expired(c.timer.Now()) {
		delete(c.items, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	c.hits.Add(1)
	return c.copyOf(e.value), true
}

// Set stores value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key, replacing any existing entry. A ttl of
// zero or less produces an entry that is already expired.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if c.isClosed.Load() {
		return
	}

	value = c.copyOf(value)
	now := c.timer.Now()
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, storedAt: now, expiresAt: now.Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key and reports whether it was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	return true
}

// DeletePrefix removes every key starting with prefix and returns the count.
func (c *Cache[V]) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	clear(c.items)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Sweep removes every expired entry in one pass and returns how many it
// removed. An entry whose expiresAt equals the sweep time counts as expired,
// the same boundary Get uses.
func (c *Cache[V]) Sweep() int {
	now := c.timer.Now()

	c.mu.Lock()
	removed := 0
	for k, e := range c.items {
		if e.expired(now) {
			delete(c.items, k)
			removed++
		}
	}
	c.mu.Unlock()

	c.swept.Add(int64(removed))
	return removed
}

// Stats classifies every entry against the current time without evicting.
func (c *Cache[V]) Stats() Stats {
	now := c.timer.Now()

	c.mu.Lock()
	s := Stats{TotalEntries: len(c.items)}
	for _, e := range c.items {
		if e.expired(now) {
			s.ExpiredEntries++
		} else {
			s.ActiveEntries++
		}
	}
	c.mu.Unlock()

	s.Hits = c.hits.Load()
	s.Misses = c.misses.Load()
	s.Swept = c.swept.Load()
	return s
}

// Close stops the janitor and drops all entries. Later reads miss and later
// writes are ignored. Safe to call more than once.
func (c *Cache[V]) Close() {
	if c.isClosed.Swap(true) {
		return
	}
	close(c.stop)
	c.wg.Wait()
	c.Clear()
}

func (c *Cache[V]) copyOf(v V) V {
	if c.clone == nil {
		return v
	}
	return c.clone(v)
}

func (c *Cache[V]) janitor(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				c.logger.Info("cache sweep",
					zap.String("cache", c.name),
					zap.Int("removed", removed),
				)
			}
		case <-c.stop:
			return
		}
	}
}
