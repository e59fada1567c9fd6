package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dd0wney/cluso-hpo/pkg/config"
	"github.com/dd0wney/cluso-hpo/pkg/health"
	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/metrics"
	"github.com/dd0wney/cluso-hpo/pkg/query"
)

// Server represents the HTTP API server. It can listen before the ontology
// has loaded; until SetService is called, API routes answer 503.
type Server struct {
	cfg           *config.Config
	metrics       *metrics.Registry
	healthChecker *health.HealthChecker
	logger        logging.Logger
	state         atomic.Pointer[serviceState]
	startTime     time.Time
	version       string
}

// serviceState is swapped in as a unit once loading completes.
type serviceState struct {
	svc     *query.Service
	graphql http.Handler
}

// Options configures a Server. Zero values are usable.
type Options struct {
	Metrics *metrics.Registry
	Logger  logging.Logger
	Version string
}

// route is one entry of the REST surface. The same table drives mux
// registration and the development /api/docs listing.
type route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`

	pattern string
	handler http.HandlerFunc
}
