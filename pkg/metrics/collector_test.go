package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/codelens/pkg/common/cache/ttl"
	"github.com/huynhanx03/codelens/pkg/timer"
)

func TestCacheCollector(t *testing.T) {
	clock := timer.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := ttl.New(ttl.Config[int]{Name: "reports", SweepInterval: -1, Timer: clock})
	defer c.Close()

	c.SetWithTTL("a", 1, time.Second)
	c.SetWithTTL("b", 2, time.Hour)
	c.Get("b")
	c.Get("nope")
	clock.Advance(time.Minute)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCacheCollector(c)))

	expected := `
# HELP codelens_cache_entries Entries held by the cache, by expiry state.
# TYPE codelens_cache_entries gauge
codelens_cache_entries{cache="reports",state="active"} 1
codelens_cache_entries{cache="reports",state="expired"} 1
# HELP codelens_cache_hits_total Reads that found a fresh entry.
# TYPE codelens_cache_hits_total counter
codelens_cache_hits_total{cache="reports"} 1
# HELP codelens_cache_misses_total Reads that found no fresh entry.
# TYPE codelens_cache_misses_total counter
codelens_cache_misses_total{cache="reports"} 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"codelens_cache_entries", "codelens_cache_hits_total", "codelens_cache_misses_total")
	assert.NoError(t, err)
}

func TestHTTPMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics()
	require.NoError(t, m.Register(reg))

	m.Requests.WithLabelValues("/healthz", "GET", "200").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/healthz", "GET", "200")))

	assert.Error(t, m.Register(reg))
}
