// Package graphtest builds small in-memory ontologies for tests.
package graphtest

import (
	"testing"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/ontology"
)

// Builder accumulates nodes and edges of a test document.
type Builder struct {
	doc ontology.Document
}

// New starts an empty document.
func New() *Builder {
	return &Builder{}
}

// Term adds a node with a label and optional synonyms.
func (b *Builder) Term(id, label string, synonyms ...string) *Builder {
	l := label
	b.doc.Nodes = append(b.doc.Nodes, ontology.Node{ID: id, Label: &l, Synonyms: synonyms})
	return b
}

// Unlabelled adds a node without a label.
func (b *Builder) Unlabelled(id string) *Builder {
	b.doc.Nodes = append(b.doc.Nodes, ontology.Node{ID: id})
	return b
}

// IsA adds child is_a parent.
func (b *Builder) IsA(child, parent string) *Builder {
	return b.Edge(child, ontology.PredicateIsA, parent)
}

// Edge adds an arbitrary triple.
func (b *Builder) Edge(sub, pred, obj string) *Builder {
	b.doc.Edges = append(b.doc.Edges, ontology.Edge{Subject: sub, Predicate: pred, Object: obj})
	return b
}

// Document returns the accumulated document.
func (b *Builder) Document() *ontology.Document {
	d := b.doc
	return &d
}

// Store builds the document, failing the test on error.
func (b *Builder) Store(t testing.TB) *graph.Store {
	t.Helper()
	s, err := graph.Build(b.Document())
	if err != nil {
		t.Fatalf("graph.Build: %v", err)
	}
	return s
}

// Chain returns root R, child C1 is_a R and grandchild C2 is_a C1.
func Chain(t testing.TB) *graph.Store {
	return New().
		Term("R", "root").
		Term("C1", "child").
		Term("C2", "grandchild").
		IsA("C1", "R").
		IsA("C2", "C1").
		Store(t)
}

// Diamond returns D is_a B, D is_a C, B is_a A, C is_a A.
func Diamond(t testing.TB) *graph.Store {
	return New().
		Term("A", "top").
		Term("B", "left").
		Term("C", "right").
		Term("D", "bottom").
		IsA("B", "A").
		IsA("C", "A").
		IsA("D", "B").
		IsA("D", "C").
		Store(t)
}

// Cycle returns A is_a B and B is_a A.
func Cycle(t testing.TB) *graph.Store {
	return New().
		Term("A", "alpha").
		Term("B", "beta").
		IsA("A", "B").
		IsA("B", "A").
		Store(t)
}
