package ontology

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_MiniHPO(t *testing.T) {
	f, err := os.Open("testdata/mini_hp.json")
	require.NoError(t, err)
	defer f.Close()

	doc, err := Decode(f)
	require.NoError(t, err)

	require.Len(t, doc.Nodes, 6)
	require.Len(t, doc.Edges, 8)

	root := doc.Nodes[0]
	assert.Equal(t, "http://purl.obolibrary.org/obo/HP_0000001", root.ID)
	require.NotNil(t, root.Label)
	assert.Equal(t, "All", *root.Label)
	assert.Nil(t, root.Definition)
	assert.Empty(t, root.Synonyms)

	pa := doc.Nodes[1]
	require.NotNil(t, pa.Definition)
	assert.Equal(t, "A phenotypic abnormality.", *pa.Definition)
	assert.Equal(t, []string{"Organ abnormality"}, pa.Synonyms)

	eye := doc.Nodes[2]
	assert.Equal(t, []string{"Eye defect", "Abnormal eye"}, eye.Synonyms)

	assert.Nil(t, doc.Nodes[5].Label, "missing lbl stays nil for the graph builder to default")

	assert.Equal(t, Edge{
		Subject:   "http://purl.obolibrary.org/obo/HP_0000118",
		Predicate: PredicateIsA,
		Object:    "http://purl.obolibrary.org/obo/HP_0000001",
	}, doc.Edges[0])
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"graphs": [`},
		{"no graphs key", `{}`},
		{"empty graphs", `{"graphs": []}`},
		{"node without id", `{"graphs": [{"nodes": [{"lbl": "x"}]}]}`},
		{"synonym without value", `{"graphs": [{"nodes": [{"id": "a", "meta": {"synonyms": [{"pred": "x"}]}}]}]}`},
		{"edge without predicate", `{"graphs": [{"edges": [{"sub": "a", "obj": "b"}]}]}`},
		{"is_a without object", `{"graphs": [{"edges": [{"sub": "a", "pred": "is_a"}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLoadFailure), "error %v should wrap ErrLoadFailure", err)
		})
	}
}

func TestDecode_NonIsAEdgeMayOmitEndpoints(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"graphs": [{"edges": [{"pred": "part_of"}]}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Edges, 1)
	assert.Equal(t, "part_of", doc.Edges[0].Predicate)
}

func TestDecode_OnlyFirstGraph(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"graphs": [{"nodes": [{"id": "a"}]}, {"nodes": [{"id": "b"}, {"id": "c"}]}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, "a", doc.Nodes[0].ID)
}
