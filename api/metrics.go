package api

import (
	"sort"
	"sync"
	"time"
)

// maxRouteSamples caps the latency samples kept per route for percentiles
const maxRouteSamples = 500

// RequestTrace is the timing of one finished request
type RequestTrace struct {
	RequestID string        `json:"requestId"`
	Method    string        `json:"method"`
	Route     string        `json:"route"`
	Status    int           `json:"status"`
	StartTime time.Time     `json:"startTime"`
	Duration  time.Duration `json:"duration"`
}

// RouteMetrics aggregates the traces of one method and route template.
// Durations are reported in milliseconds.
type RouteMetrics struct {
	Method      string    `json:"method"`
	Route       string    `json:"route"`
	Count       int64     `json:"count"`
	ErrorCount  int64     `json:"errorCount"`
	AvgTimeMs   int64     `json:"avgTime"`
	MinTimeMs   int64     `json:"minTime"`
	MaxTimeMs   int64     `json:"maxTime"`
	P95TimeMs   int64     `json:"p95Time"`
	LastRequest time.Time `json:"lastRequest"`
}

// MetricsSummary is the snapshot served by the metrics endpoint
type MetricsSummary struct {
	WindowStart       time.Time      `json:"windowStart"`
	TotalRequests     int64          `json:"totalRequests"`
	TotalErrors       int64          `json:"totalErrors"`
	ErrorRate         float64        `json:"errorRate"`
	RequestsPerSecond float64        `json:"requestsPerSecond"`
	Routes            []RouteMetrics `json:"routes"`
}

type routeStats struct {
	method, route string
	count, errors int64
	total         time.Duration
	min, max      time.Duration
	last          time.Time
	samples       []time.Duration
}

// MetricsCollector aggregates request traces in the background. Recording
// never blocks a request: traces are dropped when the buffer is full.
type MetricsCollector struct {
	mu            sync.RWMutex
	routes        map[string]*routeStats
	windowStart   time.Time
	totalRequests int64
	totalErrors   int64

	traceChan chan RequestTrace
	stopChan  chan struct{}
	stopOnce  sync.Once
	now       func() time.Time
}

// NewMetricsCollector starts the background aggregator with the given buffer size
func NewMetricsCollector(buffer int) *MetricsCollector {
	mc := &MetricsCollector{
		routes:      make(map[string]*routeStats),
		windowStart: time.Now(),
		traceChan:   make(chan RequestTrace, buffer),
		stopChan:    make(chan struct{}),
		now:         time.Now,
	}
	go mc.processTraces()
	return mc
}

// RecordTrace queues a trace without blocking
func (mc *MetricsCollector) RecordTrace(trace RequestTrace) {
	select {
	case mc.traceChan <- trace:
	default:
	}
}

// Stop ends the background aggregator. Queued traces are discarded.
func (mc *MetricsCollector) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopChan) })
}

func (mc *MetricsCollector) processTraces() {
	for {
		select {
		case trace := <-mc.traceChan:
			mc.processTrace(trace)
		case <-mc.stopChan:
			return
		}
	}
}

func (mc *MetricsCollector) processTrace(trace RequestTrace) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	key := trace.Method + " " + trace.Route
	rs, ok := mc.routes[key]
	if !ok {
		rs = &routeStats{method: trace.Method, route: trace.Route, min: trace.Duration}
		mc.routes[key] = rs
	}

	rs.count++
	rs.total += trace.Duration
	if trace.Duration < rs.min {
		rs.min = trace.Duration
	}
	if trace.Duration > rs.max {
		rs.max = trace.Duration
	}
	if trace.StartTime.After(rs.last) {
		rs.last = trace.StartTime
	}
	if len(rs.samples) >= maxRouteSamples {
		rs.samples = rs.samples[1:]
	}
	rs.samples = append(rs.samples, trace.Duration)

	mc.totalRequests++
	if trace.Status >= 400 {
		rs.errors++
		mc.totalErrors++
	}
}

// Summary returns the aggregated metrics, slowest routes first
func (mc *MetricsCollector) Summary() MetricsSummary {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	s := MetricsSummary{
		WindowStart:   mc.windowStart,
		TotalRequests: mc.totalRequests,
		TotalErrors:   mc.totalErrors,
		Routes:        make([]RouteMetrics, 0, len(mc.routes)),
	}
	if mc.totalRequests > 0 {
		s.ErrorRate = float64(mc.totalErrors) / float64(mc.totalRequests) * 100
	}
	if elapsed := mc.now().Sub(mc.windowStart).Seconds(); elapsed > 0 {
		s.RequestsPerSecond = float64(mc.totalRequests) / elapsed
	}

	for _, rs := range mc.routes {
		s.Routes = append(s.Routes, RouteMetrics{
			Method:      rs.method,
			Route:       rs.route,
			Count:       rs.count,
			ErrorCount:  rs.errors,
			AvgTimeMs:   (rs.total / time.Duration(rs.count)).Milliseconds(),
			MinTimeMs:   rs.min.Milliseconds(),
			MaxTimeMs:   rs.max.Milliseconds(),
			P95TimeMs:   percentile(rs.samples, 0.95).Milliseconds(),
			LastRequest: rs.last,
		})
	}
	sort.Slice(s.Routes, func(i, j int) bool {
		if s.Routes[i].AvgTimeMs != s.Routes[j].AvgTimeMs {
			return s.Routes[i].AvgTimeMs > s.Routes[j].AvgTimeMs
		}
		return s.Routes[i].Method+" "+s.Routes[i].Route < s.Routes[j].Method+" "+s.Routes[j].Route
	})
	return s
}

func percentile(samples []time.Duration, p float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
