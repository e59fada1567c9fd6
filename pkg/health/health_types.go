// Package health reports whether the service is alive and whether the
// ontology has finished loading.
package health

import (
	"sync"
	"time"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Scope selects which endpoint a check contributes to.
type Scope int

const (
	// ScopeHealth checks feed the general /health report.
	ScopeHealth Scope = iota
	// ScopeReadiness checks gate traffic.
	ScopeReadiness
	// ScopeLiveness checks decide whether the process should be restarted.
	ScopeLiveness
)

// Check represents a health check for a specific component
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	DurationMS  float64        `json:"duration_ms"`
}

// CheckFunc is a function that performs a health check
type CheckFunc func() Check

// HealthChecker manages health checks for the application
type HealthChecker struct {
	mu        sync.RWMutex
	checks    map[Scope]map[string]CheckFunc
	startTime time.Time
	now       func() time.Time
}

// Response represents the overall health response
type Response struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Checks        map[string]Check `json:"checks"`
	UptimeSeconds float64          `json:"uptime_seconds"`
}
