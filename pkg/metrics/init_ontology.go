package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initOntologyMetrics() {
	r.OntologyTermsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ontology_terms",
			Help:      "Number of terms in the loaded ontology",
		},
	)

	r.OntologyRelationsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ontology_relations",
			Help:      "Number of is_a relations in the loaded ontology",
		},
	)

	r.OntologyDroppedTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ontology_dropped",
			Help:      "Input nodes and edges discarded during load, by reason",
		},
		[]string{"reason"},
	)

	r.OntologyLoadDuration = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ontology_load_duration_seconds",
			Help:      "Time taken to read, decode and index the ontology",
		},
	)

	r.OntologyLoadedTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "ontology_loaded_timestamp_seconds",
			Help:      "Unix time at which the ontology finished loading",
		},
	)
}
