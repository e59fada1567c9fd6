package visualization

import (
	"math"
	"math/rand/v2"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
)

// ForceDirectedLayout implements force-directed graph layout
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	return &ForceDirectedLayout{config: withDefaults(config)}
}

// ComputeLayout runs a Fruchterman-Reingold style simulation. The initial
// placement is drawn from config.Seed, so equal inputs give equal output.
func (fdl *ForceDirectedLayout) ComputeLayout(nodeIDs []string, edges []graph.Relation) (map[string]Position, error) {
	if len(nodeIDs) == 0 {
		return make(map[string]Position), nil
	}

	if len(nodeIDs) == 1 {
		return map[string]Position{
			nodeIDs[0]: {X: fdl.config.Width / 2, Y: fdl.config.Height / 2},
		}, nil
	}

	rng := rand.New(rand.NewPCG(fdl.config.Seed, uint64(len(nodeIDs))))
	cfg := fdl.config
	positions := make(map[string]Position, len(nodeIDs))
	for _, id := range nodeIDs {
		positions[id] = Position{
			X: rng.Float64()*(cfg.Width-2*cfg.Padding) + cfg.Padding,
			Y: rng.Float64()*(cfg.Height-2*cfg.Padding) + cfg.Padding,
		}
	}

	adj := buildAdjacency(nodeIDs, edges)

	// Optimal distance
	k := math.Sqrt((cfg.Width * cfg.Height) / float64(len(nodeIDs)))
	temperature := cfg.Width / 10.0

	for iter := 0; iter < cfg.Iterations; iter++ {
		forces := make(map[string]Position, len(nodeIDs))

		// Repulsion between all pairs
		for i, a := range nodeIDs {
			for _, b := range nodeIDs[i+1:] {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Max(math.Sqrt(dx*dx+dy*dy), 0.01)

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[a] = Position{X: forces[a].X + fx, Y: forces[a].Y + fy}
				forces[b] = Position{X: forces[b].X - fx, Y: forces[b].Y - fy}
			}
		}

		// Attraction along is_a edges, applied to both ends
		for _, child := range nodeIDs {
			for _, parent := range adj.parents[child] {
				dx := positions[child].X - positions[parent].X
				dy := positions[child].Y - positions[parent].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[child] = Position{X: forces[child].X - fx, Y: forces[child].Y - fy}
				forces[parent] = Position{X: forces[parent].X + fx, Y: forces[parent].Y + fy}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(cfg.Iterations)
		for _, id := range nodeIDs {
			fx, fy := forces[id].X, forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)
			if force > 0 {
				step := math.Min(force, temperature) * cool
				positions[id] = Position{
					X: positions[id].X + (fx/force)*step,
					Y: positions[id].Y + (fy/force)*step,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, cfg.Width, cfg.Height, cfg.Padding), nil
}
