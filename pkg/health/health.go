package health

import (
	"time"
)

// NewHealthChecker creates a new health checker. Uptime is measured from
// this call.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: map[Scope]map[string]CheckFunc{
			ScopeHealth:    {},
			ScopeReadiness: {},
			ScopeLiveness:  {},
		},
		startTime: time.Now(),
		now:       time.Now,
	}
}

// Register adds or replaces the check called name in scope.
func (hc *HealthChecker) Register(scope Scope, name string, check CheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	if hc.checks[scope] == nil {
		hc.checks[scope] = make(map[string]CheckFunc)
	}
	hc.checks[scope][name] = check
}

// RegisterCheck registers a check for the /health report.
func (hc *HealthChecker) RegisterCheck(name string, check CheckFunc) {
	hc.Register(ScopeHealth, name, check)
}

// RegisterReadinessCheck registers a readiness check
func (hc *HealthChecker) RegisterReadinessCheck(name string, check CheckFunc) {
	hc.Register(ScopeReadiness, name, check)
}

// RegisterLivenessCheck registers a liveness check
func (hc *HealthChecker) RegisterLivenessCheck(name string, check CheckFunc) {
	hc.Register(ScopeLiveness, name, check)
}

// Check performs all health checks
func (hc *HealthChecker) Check() Response {
	return hc.Run(ScopeHealth)
}

// CheckReadiness performs readiness checks
func (hc *HealthChecker) CheckReadiness() Response {
	return hc.Run(ScopeReadiness)
}

// CheckLiveness performs liveness checks
func (hc *HealthChecker) CheckLiveness() Response {
	return hc.Run(ScopeLiveness)
}

// Run executes every check in scope. The worst individual status becomes
// the overall status; no checks means healthy.
func (hc *HealthChecker) Run(scope Scope) Response {
	hc.mu.RLock()
	funcs := make(map[string]CheckFunc, len(hc.checks[scope]))
	for name, fn := range hc.checks[scope] {
		funcs[name] = fn
	}
	hc.mu.RUnlock()

	now := hc.now()
	response := Response{
		Status:        StatusHealthy,
		Timestamp:     now,
		Checks:        make(map[string]Check, len(funcs)),
		UptimeSeconds: now.Sub(hc.startTime).Seconds(),
	}

	for name, fn := range funcs {
		start := time.Now()
		check := fn()
		check.DurationMS = float64(time.Since(start).Microseconds()) / 1000
		check.LastChecked = start
		if check.Name == "" {
			check.Name = name
		}

		response.Checks[name] = check
		response.Status = worse(response.Status, check.Status)
	}

	return response
}

func severity(s Status) int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

func worse(a, b Status) Status {
	if severity(b) > severity(a) {
		return b
	}
	return a
}
