package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "hpo"

// Query status labels.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusInvalid  = "invalid"
	StatusError    = "error"
)

// SlowQueryThreshold marks a query as slow.
const SlowQueryThreshold = 250 * time.Millisecond

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Query Metrics
	QueriesTotal       *prometheus.CounterVec
	QueryDuration      *prometheus.HistogramVec
	SlowQueries        *prometheus.CounterVec
	SearchMatches      prometheus.Histogram
	SubgraphNodes      prometheus.Histogram
	SubgraphEdges      prometheus.Histogram
	GraphQLErrorsTotal prometheus.Counter

	// Ontology Metrics
	OntologyTermsTotal      prometheus.Gauge
	OntologyRelationsTotal  prometheus.Gauge
	OntologyDroppedTotal    *prometheus.GaugeVec
	OntologyLoadDuration    prometheus.Gauge
	OntologyLoadedTimestamp prometheus.Gauge

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}
