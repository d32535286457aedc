package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem(t *testing.T) {
	before := time.Now()
	got := System().Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestCachedTimer(t *testing.T) {
	ct := NewCachedTimer(5 * time.Millisecond)
	defer ct.Stop()

	first := ct.Now()
	assert.Eventually(t, func() bool {
		return ct.Now().After(first)
	}, time.Second, 5*time.Millisecond)
}

func TestCachedTimer_StopIsIdempotent(t *testing.T) {
	ct := NewCachedTimer(0)
	ct.Stop()
	ct.Stop()

	frozen := ct.Now()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, frozen, ct.Now())
}

func TestManual(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManual(start)

	assert.Equal(t, start, m.Now())
	m.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), m.Now())

	m.Set(start)
	assert.Equal(t, start, m.Now())
}
