// Package visualization computes 2-D positions for subgraphs so clients can
// draw them without running their own layout.
package visualization

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       uint64  // Seed for the force layout's initial placement
}

// DefaultLayoutConfig returns an 800x600 canvas.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{Width: 800, Height: 600, Iterations: 50, Padding: 50, Seed: 1}
}

// Layout computes positions for the given term ids. Edges are is_a
// relations between those ids; edges naming other ids are ignored.
type Layout interface {
	ComputeLayout(nodeIDs []string, edges []graph.Relation) (map[string]Position, error)
}

// Kind names a layout algorithm.
type Kind string

// Supported layout kinds.
const (
	KindNone         Kind = ""
	KindHierarchical Kind = "hierarchical"
	KindCircular     Kind = "circular"
	KindForce        Kind = "force"
)

// ParseKind accepts a layout name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindNone, KindHierarchical, KindCircular, KindForce:
		return k, nil
	default:
		return KindNone, fmt.Errorf("unknown layout %q (want hierarchical, circular or force)", s)
	}
}

// New returns the layout for kind, or nil for KindNone.
func New(kind Kind, config LayoutConfig) (Layout, error) {
	cfg := config
	switch kind {
	case KindNone:
		return nil, nil
	case KindHierarchical:
		return NewHierarchicalLayout(&cfg), nil
	case KindCircular:
		return NewCircularLayout(&cfg), nil
	case KindForce:
		return NewForceDirectedLayout(&cfg), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", kind)
	}
}
