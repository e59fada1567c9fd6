package traversal

import (
	"github.com/dd0wney/cluso-hpo/pkg/graph"
)

// Depth bounds accepted by Expand.
const (
	MinDepth     = 1
	MaxDepth     = 5
	DefaultDepth = 2
)

// Subgraph is the neighbourhood of a root term.
type Subgraph struct {
	Root  string           `json:"-"`
	Depth int              `json:"-"`
	Nodes []*graph.Term    `json:"nodes"`
	Edges []graph.Relation `json:"edges"`
	// Distances maps every node id to its hop count from Root.
	Distances map[string]int `json:"-"`
}

// Expander walks parents and children outwards from a term.
type Expander struct {
	store *graph.Store
}

// NewExpander creates an Expander over store.
func NewExpander(store *graph.Store) *Expander {
	return &Expander{store: store}
}

type bfsEntry struct {
	term *graph.Term
	hop  int
}

// Expand returns every term within depth hops of id, following is_a in
// both directions, together with every relation between returned terms.
//
// Nodes come back in breadth-first order with parents visited before
// children. Terms at exactly depth hops contribute only edges to terms
// already in the result, so no edge leaves the node set.
func (e *Expander) Expand(id string, depth int) (*Subgraph, error) {
	if depth < MinDepth || depth > MaxDepth {
		return nil, graph.InvalidQueryError("subgraph", "depth must be between %d and %d, got %d", MinDepth, MaxDepth, depth)
	}
	root, err := e.store.Get(id)
	if err != nil {
		return nil, graph.NotFoundError("subgraph", id)
	}

	sg := &Subgraph{
		Root:      id,
		Depth:     depth,
		Nodes:     []*graph.Term{},
		Edges:     []graph.Relation{},
		Distances: map[string]int{id: 0},
	}
	seenEdges := make(map[graph.Relation]struct{})
	addEdge := func(child, parent string) {
		rel := graph.Relation{Child: child, Parent: parent}
		if _, ok := seenEdges[rel]; ok {
			return
		}
		seenEdges[rel] = struct{}{}
		sg.Edges = append(sg.Edges, rel)
	}

	queue := []bfsEntry{{term: root, hop: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sg.Nodes = append(sg.Nodes, current.term)

		frontier := current.hop >= depth
		nextHop := current.hop + 1

		visit := func(neighborID string, edge func()) {
			if _, seen := sg.Distances[neighborID]; seen {
				edge()
				return
			}
			if frontier {
				return
			}
			neighbor, err := e.store.Get(neighborID)
			if err != nil {
				return
			}
			edge()
			sg.Distances[neighborID] = nextHop
			queue = append(queue, bfsEntry{term: neighbor, hop: nextHop})
		}

		self := current.term.ID
		for _, parentID := range current.term.Parents {
			visit(parentID, func() { addEdge(self, parentID) })
		}
		for _, childID := range current.term.Children {
			visit(childID, func() { addEdge(childID, self) })
		}
	}

	return sg, nil
}
