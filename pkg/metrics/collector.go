// Package metrics exposes cache and HTTP metrics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/huynhanx03/codelens/pkg/common/cache/ttl"
)

const namespace = "codelens"

// StatsSource is a named cache that can report its stats.
type StatsSource interface {
	Name() string
	Stats() ttl.Stats
}

// CacheCollector reads Stats from every source at scrape time.
type CacheCollector struct {
	sources []StatsSource

	entries *prometheus.Desc
	hits    *prometheus.Desc
	misses  *prometheus.Desc
	swept   *prometheus.Desc
}

var _ prometheus.Collector = (*CacheCollector)(nil)

func NewCacheCollector(sources ...StatsSource) *CacheCollector {
	labels := []string{"cache"}
	return &CacheCollector{
		sources: sources,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "entries"),
			"Entries held by the cache, by expiry state.",
			[]string{"cache", "state"}, nil,
		),
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hits_total"),
			"Reads that found a fresh entry.",
			labels, nil,
		),
		misses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "misses_total"),
			"Reads that found no fresh entry.",
			labels, nil,
		),
		swept: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "swept_total"),
			"Expired entries removed by sweeps.",
			labels, nil,
		),
	}
}

func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.hits
	ch <- c.misses
	ch <- c.swept
}

func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	for _, src := range c.sources {
		name := src.Name()
		s := src.Stats()

		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.ActiveEntries), name, "active")
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.ExpiredEntries), name, "expired")
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits), name)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses), name)
		ch <- prometheus.MustNewConstMetric(c.swept, prometheus.CounterValue, float64(s.Swept), name)
	}
}
