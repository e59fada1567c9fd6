package visualization

import (
	"math"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
)

// CircularLayout arranges nodes in a circle
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	return &CircularLayout{config: withDefaults(config)}
}

// ComputeLayout places nodes on a circle in the order given, starting at
// angle zero.
func (cl *CircularLayout) ComputeLayout(nodeIDs []string, _ []graph.Relation) (map[string]Position, error) {
	positions := make(map[string]Position, len(nodeIDs))

	if len(nodeIDs) == 0 {
		return positions, nil
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	if len(nodeIDs) == 1 {
		positions[nodeIDs[0]] = Position{X: centerX, Y: centerY}
		return positions, nil
	}

	radius := math.Max(math.Min(centerX, centerY)-cl.config.Padding, 0)
	angleStep := 2 * math.Pi / float64(len(nodeIDs))

	for i, id := range nodeIDs {
		angle := float64(i) * angleStep
		positions[id] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
