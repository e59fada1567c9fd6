// Package traversal answers neighbourhood questions over a graph.Store:
// direct parents and children of a term, and bounded bidirectional
// expansion into a subgraph.
package traversal

import "github.com/dd0wney/cluso-hpo/pkg/graph"

// Resolver looks up the direct neighbours of a term.
type Resolver struct {
	store *graph.Store
}

// NewResolver creates a Resolver over store.
func NewResolver(store *graph.Store) *Resolver {
	return &Resolver{store: store}
}

// Parents returns the terms id is_a, in load order.
func (r *Resolver) Parents(id string) ([]*graph.Term, error) {
	term, err := r.store.Get(id)
	if err != nil {
		return nil, graph.NotFoundError("parents", id)
	}
	return r.resolve(term.Parents), nil
}

// Children returns the terms that are_a id, in load order.
func (r *Resolver) Children(id string) ([]*graph.Term, error) {
	term, err := r.store.Get(id)
	if err != nil {
		return nil, graph.NotFoundError("children", id)
	}
	return r.resolve(term.Children), nil
}

// resolve maps ids to terms, skipping any the store does not know.
func (r *Resolver) resolve(ids []string) []*graph.Term {
	terms := make([]*graph.Term, 0, len(ids))
	for _, id := range ids {
		if t, err := r.store.Get(id); err == nil {
			terms = append(terms, t)
		}
	}
	return terms
}
