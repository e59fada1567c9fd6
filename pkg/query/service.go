// Package query is the facade every boundary (HTTP, GraphQL, CLI) calls.
// It decodes identifiers, validates parameters, dispatches to the search
// and traversal components, and records metrics and logs for each call.
package query

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/metrics"
	"github.com/dd0wney/cluso-hpo/pkg/search"
	"github.com/dd0wney/cluso-hpo/pkg/traversal"
	"github.com/dd0wney/cluso-hpo/pkg/validation"
	"github.com/dd0wney/cluso-hpo/pkg/visualization"
)

// Options configures a Service. Zero values are usable.
type Options struct {
	RootID        string
	Layout        visualization.LayoutConfig
	DefaultLayout visualization.Kind
	Metrics       *metrics.Registry
	Logger        logging.Logger
}

// Service answers ontology queries over an immutable Store.
type Service struct {
	store    *graph.Store
	index    *search.Index
	resolver *traversal.Resolver
	expander *traversal.Expander

	rootID        string
	layout        visualization.LayoutConfig
	defaultLayout visualization.Kind
	metrics       *metrics.Registry
	logger        logging.Logger
}

// New composes a Service over store.
func New(store *graph.Store, opts Options) *Service {
	s := &Service{
		store:         store,
		index:         search.NewIndex(store),
		resolver:      traversal.NewResolver(store),
		expander:      traversal.NewExpander(store),
		rootID:        validation.DefaultOr(opts.RootID, graph.DefaultRootID),
		layout:        opts.Layout,
		defaultLayout: opts.DefaultLayout,
		metrics:       opts.Metrics,
		logger:        opts.Logger,
	}
	if s.layout == (visualization.LayoutConfig{}) {
		s.layout = visualization.DefaultLayoutConfig()
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	s.logger = s.logger.With(logging.Component("query"))
	return s
}

// Store exposes the underlying term table.
func (s *Service) Store() *graph.Store {
	return s.store
}

// WarmSearch builds the search cache ahead of the first request.
func (s *Service) WarmSearch() {
	s.index.Warm()
}

// DecodeID percent-decodes a path identifier. Malformed escapes leave the
// input unchanged.
func DecodeID(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ResolveID expands a short identifier (HP_0000478 or HP:0000478) to the
// full IRI when the store knows it. Anything else is returned unchanged.
func (s *Service) ResolveID(id string) string {
	if s.store.Has(id) {
		return id
	}
	if full := graph.OBOPrefix + strings.Replace(id, ":", "_", 1); s.store.Has(full) {
		return full
	}
	return id
}

// Term returns the term named by rawID.
func (s *Service) Term(rawID string) (term *graph.Term, err error) {
	id := DecodeID(rawID)
	defer s.observe("term", time.Now(), &err, logging.TermID(id))

	term, err = s.store.Get(id)
	if err != nil {
		return nil, graph.NotFoundError("term", id)
	}
	return term, nil
}

// Parents returns the direct parents of rawID.
func (s *Service) Parents(rawID string) (resp *ParentsResponse, err error) {
	id := DecodeID(rawID)
	defer s.observe("parents", time.Now(), &err, logging.TermID(id))

	parents, err := s.resolver.Parents(id)
	if err != nil {
		return nil, err
	}
	return &ParentsResponse{Parents: parents}, nil
}

// Children returns the direct children of rawID.
func (s *Service) Children(rawID string) (resp *ChildrenResponse, err error) {
	id := DecodeID(rawID)
	defer s.observe("children", time.Now(), &err, logging.TermID(id))

	children, err := s.resolver.Children(id)
	if err != nil {
		return nil, err
	}
	return &ChildrenResponse{Children: children}, nil
}

// Search runs a ranked substring search.
func (s *Service) Search(req SearchRequest) (resp *SearchResponse, err error) {
	defer s.observe("search", time.Now(), &err, logging.Query(req.Query))

	if err := validation.Struct(&req); err != nil {
		return nil, invalid("search", err)
	}

	result, err := s.index.Search(req.Query, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordSearch(result.Total)
	}
	return &SearchResponse{
		Nodes:    result.Terms,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}, nil
}

// Subgraph expands the neighbourhood of req.ID and, when a layout is
// requested or configured, attaches node positions.
func (s *Service) Subgraph(req SubgraphRequest) (resp *SubgraphResponse, err error) {
	req.ID = DecodeID(req.ID)
	defer s.observe("subgraph", time.Now(), &err, logging.TermID(req.ID), logging.Depth(req.Depth))

	if err := validation.Struct(&req); err != nil {
		return nil, invalid("subgraph", err)
	}

	sg, err := s.expander.Expand(req.ID, req.Depth)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordSubgraph(len(sg.Nodes), len(sg.Edges))
	}

	resp = &SubgraphResponse{Nodes: sg.Nodes, Edges: sg.Edges}

	kind := visualization.Kind(req.Layout)
	if kind == visualization.KindNone {
		kind = s.defaultLayout
	}
	if kind != visualization.KindNone {
		positions, err := s.positions(kind, sg)
		if err != nil {
			return nil, err
		}
		resp.Layout = string(kind)
		resp.Positions = positions
	}
	return resp, nil
}

func (s *Service) positions(kind visualization.Kind, sg *traversal.Subgraph) (map[string]visualization.Position, error) {
	layout, err := visualization.New(kind, s.layout)
	if err != nil {
		return nil, graph.InvalidQueryError("subgraph", "%v", err)
	}
	ids := make([]string, len(sg.Nodes))
	for i, n := range sg.Nodes {
		ids[i] = n.ID
	}
	positions, err := layout.ComputeLayout(ids, sg.Edges)
	if err != nil {
		return nil, graph.NewError("layout").Term(sg.Root).Cause(err).Err()
	}
	return positions, nil
}

// Stats reports term and relation counts and the configured root.
func (s *Service) Stats() graph.Stats {
	start := time.Now()
	stats := s.store.Stats(s.rootID)
	var err error
	s.observe("stats", start, &err)
	return stats
}

// invalid converts a validation failure into ErrInvalidQuery.
func invalid(op string, err error) error {
	return graph.NewError(op).Query().Context("%s", err.Error()).Cause(graph.ErrInvalidQuery).Err()
}

// observe records metrics and a log line for one finished call.
func (s *Service) observe(op string, start time.Time, errp *error, fields ...logging.Field) {
	elapsed := time.Since(start)
	err := *errp
	if s.metrics != nil {
		s.metrics.RecordQuery(op, statusLabel(err), elapsed)
	}

	fields = append(fields, logging.Operation(op), logging.Latency(elapsed))
	switch StatusFor(err) {
	case http.StatusOK:
		s.logger.Debug("query served", fields...)
	case http.StatusInternalServerError:
		s.logger.Error("query failed", append(fields, logging.Error(err))...)
	default:
		s.logger.Debug("query rejected", append(fields, logging.Error(err))...)
	}
}
