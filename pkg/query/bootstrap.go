package query

import (
	"context"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/metrics"
	"github.com/dd0wney/cluso-hpo/pkg/ontology"
)

// LoadStore reads src and builds the term table, publishing load metrics
// and a summary log line. Any failure wraps graph.ErrLoadFailure.
func LoadStore(ctx context.Context, src ontology.Source, reg *metrics.Registry, logger logging.Logger) (*graph.Store, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	timer := logging.StartTimer(logger, "ontology load", logging.Component("ontology"), logging.String("source", src.Name()))

	doc, err := ontology.Load(ctx, src)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	store, err := graph.Build(doc)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	bs := store.BuildStats()
	if reg != nil {
		reg.SetOntology(metrics.OntologyStats{
			Terms:            bs.Terms,
			Relations:        bs.Relations,
			DuplicateNodes:   bs.DuplicateNodes,
			SkippedPredicate: bs.SkippedPredicate,
			DanglingEdges:    bs.DanglingEdges,
			LoadDuration:     timer.Elapsed(),
		})
	}
	timer.End(
		logging.Int("terms", bs.Terms),
		logging.Int("relations", bs.Relations),
		logging.Int("dropped_dangling", bs.DanglingEdges),
		logging.Int("dropped_predicate", bs.SkippedPredicate),
		logging.Int("duplicate_nodes", bs.DuplicateNodes),
	)
	return store, nil
}

// Open resolves location to a source, loads it and composes a Service.
func Open(ctx context.Context, location string, s3opts ontology.S3Options, opts Options) (*Service, error) {
	src, err := ontology.SourceFor(ctx, location, s3opts)
	if err != nil {
		return nil, err
	}
	store, err := LoadStore(ctx, src, opts.Metrics, opts.Logger)
	if err != nil {
		return nil, err
	}
	return New(store, opts), nil
}
