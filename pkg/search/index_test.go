package search_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/graph/graphtest"
	"github.com/dd0wney/cluso-hpo/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(terms []*graph.Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.ID
	}
	return out
}

func TestSearch_ShorterLabelFirst(t *testing.T) {
	store := graphtest.New().
		Term("X", "abracadabra").
		Term("Y", "ab").
		Store(t)
	idx := search.NewIndex(store)

	res, err := idx.Search("ab", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Y", "X"}, ids(res.Terms))
	assert.Equal(t, 2, res.Total)
}

func TestSearch_TotalIndependentOfPageSize(t *testing.T) {
	store := graphtest.New().
		Term("X", "abracadabra").
		Term("Y", "ab").
		Store(t)
	idx := search.NewIndex(store)

	res, err := idx.Search("ab", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Y"}, ids(res.Terms))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.PageSize)

	res, err = idx.Search("ab", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, ids(res.Terms))
	assert.Equal(t, 2, res.Page)
}

func TestSearch_PageBeyondEnd(t *testing.T) {
	store := graphtest.New().
		Term("X", "abracadabra").
		Term("Y", "ab").
		Store(t)
	idx := search.NewIndex(store)

	for _, page := range []int{2, 3, 1 << 40} {
		res, err := idx.Search("ab", page, 20)
		require.NoError(t, err)
		assert.NotNil(t, res.Terms)
		assert.Empty(t, res.Terms)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, page, res.Page)
	}
}

func TestSearch_SynonymMatchesRankLast(t *testing.T) {
	store := graphtest.New().
		Term("S", "x", "seizure disorder").
		Term("L", "long label about seizure activity").
		Store(t)
	idx := search.NewIndex(store)

	res, err := idx.Search("seizure", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"L", "S"}, ids(res.Terms))
}

func TestSearch_MatchesShortID(t *testing.T) {
	store := graphtest.New().
		Term("http://purl.obolibrary.org/obo/HP_0000118", "Phenotypic abnormality").
		Term("http://purl.obolibrary.org/obo/HP_0000001", "All").
		Store(t)
	idx := search.NewIndex(store)

	res, err := idx.Search("hp_0000118", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://purl.obolibrary.org/obo/HP_0000118"}, ids(res.Terms))

	// The IRI prefix is not searchable.
	res, err = idx.Search("purl", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	store := graphtest.New().Term("A", "Seizure").Store(t)
	idx := search.NewIndex(store)

	res, err := idx.Search("sEIZ", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestSearch_TiesKeepLoadOrder(t *testing.T) {
	store := graphtest.New().
		Term("1", "abc").
		Term("2", "abd").
		Term("3", "abe").
		Store(t)
	idx := search.NewIndex(store)

	res, err := idx.Search("ab", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(res.Terms))
}

func TestSearch_LabelLengthCountsRunes(t *testing.T) {
	store := graphtest.New().
		Term("accent", "éé ab").
		Term("ascii", "xxxx ab").
		Store(t)
	idx := search.NewIndex(store)

	res, err := idx.Search("ab", 1, 20)
	require.NoError(t, err)
	// "éé ab" is 5 runes but 7 bytes.
	assert.Equal(t, []string{"accent", "ascii"}, ids(res.Terms))
}

func TestSearch_NoMatches(t *testing.T) {
	idx := search.NewIndex(graphtest.Chain(t))

	res, err := idx.Search("zzz", 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, res.Terms)
	assert.Empty(t, res.Terms)
	assert.Zero(t, res.Total)
}

func TestSearch_InvalidParameters(t *testing.T) {
	idx := search.NewIndex(graphtest.Chain(t))

	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"empty query", "", 1, 20},
		{"one char", "a", 1, 20},
		{"one multibyte char", "é", 1, 20},
		{"page zero", "ab", 0, 20},
		{"negative page", "ab", -1, 20},
		{"page size zero", "ab", 1, 0},
		{"page size too large", "ab", 1, 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := idx.Search(tt.query, tt.page, tt.pageSize)
			assert.Nil(t, res)
			assert.True(t, graph.IsInvalidQuery(err), "got %v", err)
		})
	}
}

func TestSearch_PageSizeBounds(t *testing.T) {
	idx := search.NewIndex(graphtest.Chain(t))

	_, err := idx.Search("ch", 1, search.MinPageSize)
	assert.NoError(t, err)
	_, err = idx.Search("ch", 1, search.MaxPageSize)
	assert.NoError(t, err)
}

func TestSearch_Concurrent(t *testing.T) {
	b := graphtest.New()
	for i := range 200 {
		b.Term(fmt.Sprintf("T%d", i), fmt.Sprintf("term number %d", i))
	}
	idx := search.NewIndex(b.Store(t))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := idx.Search("number", 1, 10)
			assert.NoError(t, err)
			assert.Equal(t, 200, res.Total)
			assert.Len(t, res.Terms, 10)
		}()
	}
	wg.Wait()
}

func BenchmarkSearch(b *testing.B) {
	builder := graphtest.New()
	for i := range 20000 {
		builder.Term(fmt.Sprintf("T%d", i), fmt.Sprintf("abnormality of structure %d", i), "synonym text")
	}
	idx := search.NewIndex(builder.Store(b))
	idx.Warm()

	b.ResetTimer()
	for b.Loop() {
		if _, err := idx.Search("structure 19", 1, 20); err != nil {
			b.Fatal(err)
		}
	}
}
