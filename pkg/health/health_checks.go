package health

import (
	"fmt"
	"runtime"
)

// AliveCheck always reports healthy. It backs the liveness probe: a
// process that can answer at all is alive.
func AliveCheck(name string) CheckFunc {
	return func() Check {
		return Check{Name: name, Status: StatusHealthy}
	}
}

// OntologyState describes the loaded ontology, or reports that loading has
// not finished.
type OntologyState func() (loaded bool, terms, relations int)

// OntologyCheck reports unhealthy until the ontology is loaded and
// degraded if it loaded empty.
func OntologyCheck(state OntologyState) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "ontology",
			Details: make(map[string]any),
		}

		loaded, terms, relations := state()
		check.Details["nodes_loaded"] = terms
		check.Details["edges_loaded"] = relations

		switch {
		case !loaded:
			check.Status = StatusUnhealthy
			check.Message = "ontology is still loading"
		case terms == 0:
			check.Status = StatusDegraded
			check.Message = "ontology loaded with no terms"
		default:
			check.Status = StatusHealthy
			check.Message = fmt.Sprintf("%d terms ready", terms)
		}

		return check
	}
}

// MemoryCheck creates a health check for memory usage. The check degrades
// once allocated heap exceeds maxPercent of memory obtained from the OS.
func MemoryCheck(getUsage func() (alloc, sys uint64), maxPercent float64) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()

		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		if sys == 0 {
			check.Status = StatusHealthy
			check.Message = "Memory usage unknown"
			return check
		}

		usagePercent := float64(alloc) / float64(sys) * 100
		check.Details["usage_percent"] = usagePercent

		if usagePercent > maxPercent {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}

// RuntimeMemory reads heap usage from the Go runtime.
func RuntimeMemory() (alloc, sys uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, m.Sys
}
