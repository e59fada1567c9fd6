package metrics

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initQueryMetrics()
	r.initOntologyMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format,
// refreshing the runtime gauges on every scrape.
func (r *Registry) Handler(startTime time.Time) http.Handler {
	inner := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.UpdateSystemMetrics(startTime)
		inner.ServeHTTP(w, req)
	})
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordResponseSize records the body size of an HTTP response.
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight marks an HTTP request as started.
func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight marks an HTTP request as finished.
func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// RecordQuery records one QueryService operation.
func (r *Registry) RecordQuery(operation, status string, duration time.Duration) {
	r.QueriesTotal.WithLabelValues(operation, status).Inc()
	r.QueryDuration.WithLabelValues(operation).Observe(duration.Seconds())

	if duration > SlowQueryThreshold {
		r.SlowQueries.WithLabelValues(operation).Inc()
	}
}

// RecordSearch records the unpaginated match count of a search.
func (r *Registry) RecordSearch(total int) {
	r.SearchMatches.Observe(float64(total))
}

// RecordSubgraph records the size of an expanded subgraph.
func (r *Registry) RecordSubgraph(nodes, edges int) {
	r.SubgraphNodes.Observe(float64(nodes))
	r.SubgraphEdges.Observe(float64(edges))
}

// OntologyStats summarises a completed load.
type OntologyStats struct {
	Terms            int
	Relations        int
	DuplicateNodes   int
	SkippedPredicate int
	DanglingEdges    int
	LoadDuration     time.Duration
}

// SetOntology publishes the shape of the loaded ontology.
func (r *Registry) SetOntology(stats OntologyStats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.OntologyTermsTotal.Set(float64(stats.Terms))
	r.OntologyRelationsTotal.Set(float64(stats.Relations))
	r.OntologyDroppedTotal.WithLabelValues("duplicate_node").Set(float64(stats.DuplicateNodes))
	r.OntologyDroppedTotal.WithLabelValues("predicate").Set(float64(stats.SkippedPredicate))
	r.OntologyDroppedTotal.WithLabelValues("dangling").Set(float64(stats.DanglingEdges))
	r.OntologyLoadDuration.Set(stats.LoadDuration.Seconds())
	r.OntologyLoadedTimestamp.SetToCurrentTime()
}

// UpdateSystemMetrics refreshes uptime and Go runtime gauges.
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}
