package traversal_test

import (
	"testing"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/graph/graphtest"
	"github.com/dd0wney/cluso-hpo/pkg/traversal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termIDs(terms []*graph.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.ID
	}
	return out
}

func TestResolver_Diamond(t *testing.T) {
	r := traversal.NewResolver(graphtest.Diamond(t))

	parents, err := r.Parents("D")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, termIDs(parents))

	children, err := r.Children("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, termIDs(children))
}

func TestResolver_Leaves(t *testing.T) {
	r := traversal.NewResolver(graphtest.Chain(t))

	parents, err := r.Parents("R")
	require.NoError(t, err)
	assert.NotNil(t, parents)
	assert.Empty(t, parents)

	children, err := r.Children("C2")
	require.NoError(t, err)
	assert.NotNil(t, children)
	assert.Empty(t, children)
}

func TestResolver_UnknownTerm(t *testing.T) {
	r := traversal.NewResolver(graphtest.Chain(t))

	_, err := r.Parents("nope")
	assert.True(t, graph.IsNotFound(err))

	_, err = r.Children("nope")
	assert.True(t, graph.IsNotFound(err))
}

func TestResolver_Cycle(t *testing.T) {
	r := traversal.NewResolver(graphtest.Cycle(t))

	parents, err := r.Parents("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, termIDs(parents))

	children, err := r.Children("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, termIDs(children))
}
