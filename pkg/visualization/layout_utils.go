package visualization

import (
	"math"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
)

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions map[string]Position, width, height, padding float64) map[string]Position {
	if len(positions) == 0 {
		return positions
	}

	// Find bounds
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[string]Position, len(positions))
	for id, pos := range positions {
		// A degenerate axis collapses onto the centre line.
		x, y := width/2, height/2
		if rangeX >= 0.01 {
			x = padding + ((pos.X-minX)/rangeX)*targetWidth
		}
		if rangeY >= 0.01 {
			y = padding + ((pos.Y-minY)/rangeY)*targetHeight
		}
		normalized[id] = Position{X: x, Y: y}
	}

	return normalized
}

// adjacency indexes edges whose endpoints are both in nodeIDs.
type adjacency struct {
	parents  map[string][]string
	children map[string][]string
}

func buildAdjacency(nodeIDs []string, edges []graph.Relation) adjacency {
	in := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		in[id] = true
	}
	adj := adjacency{
		parents:  make(map[string][]string),
		children: make(map[string][]string),
	}
	for _, e := range edges {
		if !in[e.Child] || !in[e.Parent] || e.Child == e.Parent {
			continue
		}
		adj.parents[e.Child] = append(adj.parents[e.Child], e.Parent)
		adj.children[e.Parent] = append(adj.children[e.Parent], e.Child)
	}
	return adj
}

func withDefaults(config *LayoutConfig) *LayoutConfig {
	if config.Padding == 0 {
		config.Padding = 50
	}
	if config.Width == 0 {
		config.Width = 800
	}
	if config.Height == 0 {
		config.Height = 600
	}
	return config
}
