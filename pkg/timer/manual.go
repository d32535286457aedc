package timer

import (
	"sync"
	"time"
)

// Manual is a Timer that only moves when told to. Tests use it to step over
// expiry boundaries without sleeping.
type Manual struct {
	mu      sync.Mutex
	current time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{current: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manual) Stop() {}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}
