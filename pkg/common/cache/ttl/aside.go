package ttl

import "time"

// GetOrSet returns the cached value for key, or runs compute, stores its
// result with the default TTL and returns it.
func (c *Cache[V]) GetOrSet(key string, compute func() (V, error)) (V, error) {
	return c.GetOrSetWithTTL(key, c.defaultTTL, compute)
}

// GetOrSetWithTTL is cache-aside with an explicit ttl.
//
// On a hit compute is not called. On a miss compute runs once on the calling
// goroutine. If compute fails its error is returned unchanged and nothing is
// stored.
//
// Without SingleFlight, callers racing on the same cold key may each run
// compute; every result is stored and the last write wins. With SingleFlight
// the racing callers share one compute call and its outcome.
func (c *Cache[V]) GetOrSetWithTTL(key string, ttl time.Duration, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	if c.group == nil {
		return c.fill(key, ttl, compute)
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		// A previous flight may have filled the key after our Get missed.
		if v, ok := c.peek(key); ok {
			return v, nil
		}
		return c.fill(key, ttl, compute)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	// the flight's value is shared by every waiter
	v, _ := res.(V)
	return c.copyOf(v), nil
}

func (c *Cache[V]) fill(key string, ttl time.Duration, compute func() (V, error)) (V, error) {
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.SetWithTTL(key, v, ttl)
	return v, nil
}

// peek is Get without touching hit/miss counters, evicting or cloning.
func (c *Cache[V]) peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok || e.expired(c.timer.Now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}
