package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initQueryMetrics() {
	r.QueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "queries_total",
			Help:      "Total number of ontology queries by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	r.QueryDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "query_duration_seconds",
			Help:      "Ontology query duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"operation"},
	)

	r.SlowQueries = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "slow_queries_total",
			Help:      "Total number of slow queries (>250ms)",
		},
		[]string{"operation"},
	)

	r.SearchMatches = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_matches",
			Help:      "Number of terms matched per search before pagination",
			Buckets:   []float64{0, 1, 10, 100, 1000, 10000},
		},
	)

	r.SubgraphNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "subgraph_nodes",
			Help:      "Number of nodes per subgraph expansion",
			Buckets:   []float64{1, 10, 100, 1000, 10000},
		},
	)

	r.SubgraphEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "subgraph_edges",
			Help:      "Number of edges per subgraph expansion",
			Buckets:   []float64{0, 10, 100, 1000, 10000},
		},
	)

	r.GraphQLErrorsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "graphql_errors_total",
			Help:      "Total number of GraphQL responses carrying errors",
		},
	)
}
