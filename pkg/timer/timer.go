package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is the time source shared by caches, id generators and aggregations.
type Timer interface {
	Now() time.Time
	Stop()
}

// System returns a Timer backed by time.Now.
func System() Timer {
	return systemTimer{}
}

type systemTimer struct{}

func (systemTimer) Now() time.Time { return time.Now() }
func (systemTimer) Stop()          {}

// CachedTimer refreshes its reading once per step. Readers trade precision
// for a lock-free Now on hot paths.
type CachedTimer struct {
	now    atomic.Value
	step   time.Duration
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func NewCachedTimer(step time.Duration) *CachedTimer {
	if step <= 0 {
		step = time.Millisecond
	}
	t := &CachedTimer{
		step:   step,
		ticker: time.NewTicker(step),
		done:   make(chan struct{}),
	}
	t.now.Store(time.Now())

	t.wg.Add(1)
	go t.run()

	return t
}

func (t *CachedTimer) run() {
	defer t.wg.Done()

	for {
		select {
		case now := <-t.ticker.C:
			t.now.Store(now)
		case <-t.done:
			t.ticker.Stop()
			return
		}
	}
}

func (t *CachedTimer) Now() time.Time {
	return t.now.Load().(time.Time)
}

// Stop halts the refresh goroutine. Safe to call more than once.
func (t *CachedTimer) Stop() {
	t.once.Do(func() {
		close(t.done)
	})
	t.wg.Wait()
}
