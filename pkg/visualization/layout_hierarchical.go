package visualization

import "github.com/dd0wney/cluso-hpo/pkg/graph"

// HierarchicalLayout draws general terms above specific ones.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	return &HierarchicalLayout{config: withDefaults(config)}
}

// ComputeLayout assigns each node a row by breadth-first descent from the
// terms that have no parent in the subgraph. Rows are spread evenly over
// the canvas height and nodes evenly across each row.
func (hl *HierarchicalLayout) ComputeLayout(nodeIDs []string, edges []graph.Relation) (map[string]Position, error) {
	positions := make(map[string]Position, len(nodeIDs))

	if len(nodeIDs) == 0 {
		return positions, nil
	}

	adj := buildAdjacency(nodeIDs, edges)

	roots := make([]string, 0)
	for _, id := range nodeIDs {
		if len(adj.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}

	if len(roots) == 0 {
		// Pure cycle, start from the first node
		roots = []string{nodeIDs[0]}
	}

	levels := make([][]string, 0)
	visited := make(map[string]bool, len(nodeIDs))
	for _, id := range roots {
		visited[id] = true
	}
	currentLevel := roots

	for len(currentLevel) > 0 {
		levels = append(levels, currentLevel)
		nextLevel := make([]string, 0)

		for _, id := range currentLevel {
			for _, child := range adj.children[id] {
				if !visited[child] {
					visited[child] = true
					nextLevel = append(nextLevel, child)
				}
			}
		}

		currentLevel = nextLevel
	}

	// Nodes only reachable upwards from a cycle go on the last row
	for _, id := range nodeIDs {
		if !visited[id] {
			visited[id] = true
			levels[len(levels)-1] = append(levels[len(levels)-1], id)
		}
	}

	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))
	levelWidth := hl.config.Width - 2*hl.config.Padding

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, id := range level {
			x := hl.config.Padding + spacing*float64(nodeIdx+1)
			positions[id] = Position{X: x, Y: y}
		}
	}

	return positions, nil
}
