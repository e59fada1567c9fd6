package graph

import (
	"github.com/dd0wney/cluso-hpo/pkg/ontology"
)

// Store owns the term table and relation list.
type Store struct {
	terms     map[string]*Term
	order     []*Term
	relations []Relation
	build     BuildStats
}

// BuildStats summarises what Build kept and dropped.
type BuildStats struct {
	Terms            int `json:"terms"`
	Relations        int `json:"relations"`
	DuplicateNodes   int `json:"duplicate_nodes"`
	SkippedPredicate int `json:"skipped_predicate"`
	DanglingEdges    int `json:"dangling_edges"`
}

// Stats is the summary served to clients.
type Stats struct {
	TotalNodes int    `json:"total_nodes"`
	TotalEdges int    `json:"total_edges"`
	RootNode   string `json:"root_node"`
}

// Build constructs a Store from a parsed document. Only is_a edges whose
// endpoints are both known terms are kept; every other edge is dropped.
// This is the only place a Store is ever mutated.
func Build(doc *ontology.Document) (*Store, error) {
	if doc == nil {
		return nil, NewError("build").Cause(ErrLoadFailure).Context("nil document").Err()
	}

	s := &Store{
		terms: make(map[string]*Term, len(doc.Nodes)),
		order: make([]*Term, 0, len(doc.Nodes)),
	}

	for _, n := range doc.Nodes {
		label := DefaultLabel
		if n.Label != nil && *n.Label != "" {
			label = *n.Label
		}
		definition := ""
		if n.Definition != nil {
			definition = *n.Definition
		}
		synonyms := make([]string, len(n.Synonyms))
		copy(synonyms, n.Synonyms)

		if existing, ok := s.terms[n.ID]; ok {
			// keep the first position, take the latest metadata
			existing.Label = label
			existing.Definition = definition
			existing.Synonyms = synonyms
			s.build.DuplicateNodes++
			continue
		}

		t := &Term{
			ID:         n.ID,
			Label:      label,
			ShortID:    ShortID(n.ID),
			Definition: definition,
			Synonyms:   synonyms,
			Parents:    []string{},
			Children:   []string{},
		}
		s.terms[n.ID] = t
		s.order = append(s.order, t)
	}

	for _, e := range doc.Edges {
		if e.Predicate != ontology.PredicateIsA {
			s.build.SkippedPredicate++
			continue
		}
		child, okChild := s.terms[e.Subject]
		parent, okParent := s.terms[e.Object]
		if !okChild || !okParent {
			s.build.DanglingEdges++
			continue
		}
		child.Parents = append(child.Parents, parent.ID)
		parent.Children = append(parent.Children, child.ID)
		s.relations = append(s.relations, Relation{Child: child.ID, Parent: parent.ID})
	}

	s.build.Terms = len(s.order)
	s.build.Relations = len(s.relations)
	return s, nil
}

// Get returns the term with the given identifier.
func (s *Store) Get(id string) (*Term, error) {
	t, ok := s.terms[id]
	if !ok {
		return nil, NotFoundError("get", id)
	}
	return t, nil
}

// Has reports whether id is a known term.
func (s *Store) Has(id string) bool {
	_, ok := s.terms[id]
	return ok
}

// AllTerms returns every term in load order. The slice is shared.
func (s *Store) AllTerms() []*Term {
	return s.order
}

// Relations returns every kept is_a edge in load order. The slice is shared.
func (s *Store) Relations() []Relation {
	return s.relations
}

func (s *Store) Len() int           { return len(s.order) }
func (s *Store) RelationCount() int { return len(s.relations) }

// BuildStats reports what the load kept and dropped.
func (s *Store) BuildStats() BuildStats {
	return s.build
}

// Stats summarises the store for clients. rootID defaults to DefaultRootID.
func (s *Store) Stats(rootID string) Stats {
	if rootID == "" {
		rootID = DefaultRootID
	}
	return Stats{
		TotalNodes: len(s.order),
		TotalEdges: len(s.relations),
		RootNode:   rootID,
	}
}
