// Package ontology reads OBO Graphs JSON documents (the format the Human
// Phenotype Ontology publishes as hp.json) into a flat node and edge list.
// It knows nothing about traversal; pkg/graph builds the queryable model.
package ontology

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrLoadFailure marks every error produced while reading or decoding an
// ontology document. A process must not serve queries after seeing it.
var ErrLoadFailure = errors.New("ontology load failed")

// PredicateIsA is the edge predicate denoting subsumption.
const PredicateIsA = "is_a"

// Node is one term as it appears in the source document. Optional fields are
// pointers so the graph builder can tell "absent" from "empty".
type Node struct {
	ID         string
	Label      *string
	Definition *string
	Synonyms   []string
}

// Edge is a (subject, predicate, object) triple. For is_a edges the subject
// is the more specific term.
type Edge struct {
	Subject   string
	Predicate string
	Object    string
}

// Document is a parsed ontology: nodes and edges in file order.
type Document struct {
	Nodes []Node
	Edges []Edge
}

// wire shapes of the OBO Graphs JSON format
type oboFile struct {
	Graphs []oboGraph `json:"graphs"`
}

type oboGraph struct {
	Nodes []oboNode `json:"nodes"`
	Edges []oboEdge `json:"edges"`
}

type oboNode struct {
	ID    *string  `json:"id"`
	Label *string  `json:"lbl"`
	Meta  *oboMeta `json:"meta"`
}

type oboMeta struct {
	Definition *oboValue  `json:"definition"`
	Synonyms   []oboValue `json:"synonyms"`
}

type oboValue struct {
	Val *string `json:"val"`
}

type oboEdge struct {
	Sub  *string `json:"sub"`
	Pred *string `json:"pred"`
	Obj  *string `json:"obj"`
}

func loadError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoadFailure, stage, err)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLoadFailure, fmt.Sprintf(format, args...))
}

// Decode reads an OBO Graphs JSON document. Only the first graph is used.
//
// A node must carry an id and every edge a predicate; is_a edges must also
// carry both endpoints. Synonym entries must carry a value. Edges with other
// predicates may omit their endpoints since they are never used.
func Decode(r io.Reader) (*Document, error) {
	var file oboFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, loadError("decode json", err)
	}
	if len(file.Graphs) == 0 {
		return nil, malformed("document has no graphs")
	}

	g := file.Graphs[0]
	doc := &Document{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0, len(g.Edges)),
	}

	for i, n := range g.Nodes {
		if n.ID == nil {
			return nil, malformed("node %d has no id", i)
		}
		node := Node{ID: *n.ID, Label: n.Label}
		if n.Meta != nil {
			if n.Meta.Definition != nil {
				node.Definition = n.Meta.Definition.Val
			}
			for j, s := range n.Meta.Synonyms {
				if s.Val == nil {
					return nil, malformed("node %q synonym %d has no value", *n.ID, j)
				}
				node.Synonyms = append(node.Synonyms, *s.Val)
			}
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	for i, e := range g.Edges {
		if e.Pred == nil {
			return nil, malformed("edge %d has no predicate", i)
		}
		edge := Edge{Predicate: *e.Pred}
		if *e.Pred == PredicateIsA && (e.Sub == nil || e.Obj == nil) {
			return nil, malformed("is_a edge %d is missing an endpoint", i)
		}
		if e.Sub != nil {
			edge.Subject = *e.Sub
		}
		if e.Obj != nil {
			edge.Object = *e.Obj
		}
		doc.Edges = append(doc.Edges, edge)
	}

	return doc, nil
}
