package graph_test

import (
	"fmt"
	"testing"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/graph/graphtest"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomStore builds a graph of n terms from (child, parent) index pairs.
// Indexes >= n name unknown terms so dangling edges are exercised too.
// Self loops, cycles and repeated edges all occur naturally.
func randomStore(t *testing.T, n int, children, parents []int) *graph.Store {
	b := graphtest.New()
	for i := 0; i < n; i++ {
		b.Term(fmt.Sprintf("T%d", i), fmt.Sprintf("term %d", i))
	}
	for i := range children {
		if i >= len(parents) {
			break
		}
		b.IsA(fmt.Sprintf("T%d", children[i]), fmt.Sprintf("T%d", parents[i]))
	}
	return b.Store(t)
}

// TestLoadInvariants uses property-based testing to verify that whatever
// edge list is loaded, parent lists, child lists and relations agree and
// nothing dangles.
func TestLoadInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	edgeIndex := gen.IntRange(0, 14) // terms are T0..T9, T10..T14 are unknown

	properties.Property("no dangling references survive load", prop.ForAll(
		func(children, parents []int) bool {
			s := randomStore(t, 10, children, parents)
			for _, term := range s.AllTerms() {
				for _, id := range append(append([]string{}, term.Parents...), term.Children...) {
					if !s.Has(id) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(edgeIndex),
		gen.SliceOf(edgeIndex),
	))

	properties.Property("parent lists, child lists and relations agree", prop.ForAll(
		func(children, parents []int) bool {
			s := randomStore(t, 10, children, parents)

			type pair struct{ child, parent string }
			rel := make(map[pair]int)
			for _, r := range s.Relations() {
				rel[pair{r.Child, r.Parent}]++
			}
			up := make(map[pair]int)
			down := make(map[pair]int)
			for _, term := range s.AllTerms() {
				for _, p := range term.Parents {
					up[pair{term.ID, p}]++
				}
				for _, c := range term.Children {
					down[pair{c, term.ID}]++
				}
			}
			if len(rel) != len(up) || len(rel) != len(down) {
				return false
			}
			for k, v := range rel {
				if up[k] != v || down[k] != v {
					return false
				}
			}
			return true
		},
		gen.SliceOf(edgeIndex),
		gen.SliceOf(edgeIndex),
	))

	properties.Property("kept plus dropped edges equals input edges", prop.ForAll(
		func(children, parents []int) bool {
			s := randomStore(t, 10, children, parents)
			n := len(children)
			if len(parents) < n {
				n = len(parents)
			}
			st := s.BuildStats()
			return st.Relations+st.DanglingEdges == n
		},
		gen.SliceOf(edgeIndex),
		gen.SliceOf(edgeIndex),
	))

	properties.TestingRun(t)
}
