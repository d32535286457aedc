package ttl

import "time"

// entry is owned by the cache and replaced whole on every write.
type entry[V any] struct {
	value     V
	storedAt  time.Time
	expiresAt time.Time
}

// expired reports whether now is at or past expiresAt. Freshness is the
// half-open interval [storedAt, expiresAt).
func (e entry[V]) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}
