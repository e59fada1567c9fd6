// Package api serves the ontology over REST and GraphQL.
package api

import (
	"net/http"
	"time"

	"github.com/dd0wney/cluso-hpo/pkg/api/middleware"
	"github.com/dd0wney/cluso-hpo/pkg/config"
	"github.com/dd0wney/cluso-hpo/pkg/graphql"
	"github.com/dd0wney/cluso-hpo/pkg/health"
	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/query"
)

// maxMemoryPercent degrades /health once the heap uses this share of the
// memory obtained from the OS.
const maxMemoryPercent = 90

// NewServer creates an API server that has no ontology yet.
func NewServer(cfg *config.Config, opts Options) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		cfg:           cfg,
		metrics:       opts.Metrics,
		healthChecker: health.NewHealthChecker(),
		logger:        opts.Logger.With(logging.Component("api")),
		startTime:     time.Now(),
		version:       opts.Version,
	}

	ontology := health.OntologyCheck(s.ontologyState)
	s.healthChecker.RegisterCheck("ontology", ontology)
	s.healthChecker.RegisterCheck("memory", health.MemoryCheck(health.RuntimeMemory, maxMemoryPercent))
	s.healthChecker.RegisterReadinessCheck("ontology", ontology)
	s.healthChecker.RegisterLivenessCheck("process", health.AliveCheck("process"))

	return s
}

// SetService publishes a loaded ontology. Requests already in flight keep
// the state they started with.
func (s *Server) SetService(svc *query.Service) error {
	gql, err := graphql.NewHandler(svc, graphql.HandlerOptions{
		Metrics: s.metrics,
		Logger:  s.logger,
	})
	if err != nil {
		return err
	}

	svc.WarmSearch()
	s.state.Store(&serviceState{svc: svc, graphql: gql})

	stats := svc.Stats()
	s.logger.Info("ontology ready",
		logging.Int("terms", stats.TotalNodes),
		logging.Int("relations", stats.TotalEdges),
	)
	return nil
}

// Service returns the published service, or nil while loading.
func (s *Server) Service() *query.Service {
	if st := s.state.Load(); st != nil {
		return st.svc
	}
	return nil
}

// HealthChecker exposes the checker so callers can add checks.
func (s *Server) HealthChecker() *health.HealthChecker {
	return s.healthChecker
}

func (s *Server) ontologyState() (bool, int, int) {
	st := s.state.Load()
	if st == nil {
		return false, 0, 0
	}
	stats := st.svc.Stats()
	return true, stats.TotalNodes, stats.TotalEdges
}

// MetricsHandler serves the Prometheus exposition, or nil when metrics are
// disabled.
func (s *Server) MetricsHandler() http.Handler {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.Handler(s.startTime)
}

// routes lists the REST endpoints.
func (s *Server) routes() []route {
	rs := []route{
		{Method: "GET", Path: "/api/stats", Description: "term and relation counts", pattern: "/api/stats", handler: s.handleStats},
		{Method: "GET", Path: "/api/search?q=&page=1&page_size=20", Description: "ranked substring search", pattern: "/api/search", handler: s.handleSearch},
		{Method: "GET", Path: "/api/node/{id}", Description: "one term", pattern: "/api/node/{rest...}", handler: s.handleNode},
		{Method: "GET", Path: "/api/node/{id}/parents", Description: "direct parents", pattern: "/api/node/{rest...}", handler: s.handleNode},
		{Method: "GET", Path: "/api/node/{id}/children", Description: "direct children", pattern: "/api/node/{rest...}", handler: s.handleNode},
		{Method: "GET", Path: "/api/subgraph/{id}?depth=2&layout=", Description: "neighbourhood expansion", pattern: "/api/subgraph/{rest...}", handler: s.handleSubgraph},
		{Method: "POST", Path: "/graphql", Description: "GraphQL endpoint", pattern: "/graphql", handler: s.handleGraphQL},
		{Method: "GET", Path: "/health", Description: "health report", pattern: "/health", handler: s.healthChecker.HTTPHandler()},
		{Method: "GET", Path: "/health/ready", Description: "readiness probe", pattern: "/health/ready", handler: s.healthChecker.ReadinessHandler()},
		{Method: "GET", Path: "/health/live", Description: "liveness probe", pattern: "/health/live", handler: s.healthChecker.LivenessHandler()},
	}
	if s.metrics != nil && s.cfg.Server.MetricsAddr == "" {
		metricsHandler := s.MetricsHandler()
		rs = append(rs, route{Method: "GET", Path: "/metrics", Description: "Prometheus metrics", pattern: "/metrics", handler: metricsHandler.ServeHTTP})
	}
	if s.cfg.IsDevelopment() {
		rs = append(rs, route{Method: "GET", Path: "/api/docs", Description: "this listing", pattern: "/api/docs", handler: s.handleDocs})
	}
	return rs
}

// Handler builds the routed handler with the full middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	registered := make(map[string]bool)
	for _, rt := range s.routes() {
		if registered[rt.pattern] {
			continue
		}
		registered[rt.pattern] = true

		var h http.Handler = rt.handler
		if rt.pattern == "/graphql" {
			h = middleware.BodySizeLimit(middleware.DefaultMaxBodyBytes)(h)
		}
		mux.Handle(rt.pattern, h)
	}
	mux.HandleFunc("/", s.handleNotFound)

	var handler http.Handler = mux
	if s.metrics != nil {
		handler = middleware.Metrics(s.metrics)(handler)
	}
	handler = middleware.CORS(&middleware.CORSConfig{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: s.cfg.CORS.AllowCredentials,
		MaxAge:           86400,
	})(handler)
	handler = middleware.SecurityHeaders(nil)(handler)
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.PanicRecovery(s.logger)(handler)
	return handler
}

// NewHTTPServer wraps Handler in an http.Server using the configured
// address and timeouts.
func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
}
