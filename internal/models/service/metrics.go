package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks upstream and cache activity. The zero value is ready to use.
type Metrics struct {
	upstreamCalls   int64
	upstreamErrors  int64
	upstreamLatency int64 // Total latency in nanoseconds
	cacheHits       int64
	cacheMisses     int64
	staleServes     int64
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	UpstreamCalls  int64 `json:"upstream_calls"`
	UpstreamErrors int64 `json:"upstream_errors"`
	CacheHits      int64 `json:"cache_hits"`
	CacheMisses    int64 `json:"cache_misses"`
	StaleServes    int64 `json:"stale_serves"`

	upstreamLatency int64
}

// Snapshot returns the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		UpstreamCalls:   atomic.LoadInt64(&m.upstreamCalls),
		UpstreamErrors:  atomic.LoadInt64(&m.upstreamErrors),
		CacheHits:       atomic.LoadInt64(&m.cacheHits),
		CacheMisses:     atomic.LoadInt64(&m.cacheMisses),
		StaleServes:     atomic.LoadInt64(&m.staleServes),
		upstreamLatency: atomic.LoadInt64(&m.upstreamLatency),
	}
}

func (m *Metrics) recordUpstreamCall(duration time.Duration, err error) {
	atomic.AddInt64(&m.upstreamCalls, 1)
	atomic.AddInt64(&m.upstreamLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&m.upstreamErrors, 1)
	}
}

func (m *Metrics) recordCacheHit() {
	atomic.AddInt64(&m.cacheHits, 1)
}

func (m *Metrics) recordCacheMiss() {
	atomic.AddInt64(&m.cacheMisses, 1)
}

func (m *Metrics) recordStaleServe() {
	atomic.AddInt64(&m.staleServes, 1)
}

// AverageUpstreamLatency returns the average latency in milliseconds
func (s MetricsSnapshot) AverageUpstreamLatency() float64 {
	if s.UpstreamCalls == 0 {
		return 0
	}
	avgNs := float64(s.upstreamLatency) / float64(s.UpstreamCalls)
	return avgNs / 1e6
}

// UpstreamErrorRate returns the error rate as a percentage
func (s MetricsSnapshot) UpstreamErrorRate() float64 {
	if s.UpstreamCalls == 0 {
		return 0
	}
	return float64(s.UpstreamErrors) / float64(s.UpstreamCalls) * 100
}
