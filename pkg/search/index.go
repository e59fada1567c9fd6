// Package search implements relevance-ordered substring search over the
// labels, short identifiers and synonyms of an ontology.
package search

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
)

// Request bounds.
const (
	MinQueryLength  = 2
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultPageSize = 20
)

// Result is one page of matches.
type Result struct {
	Terms    []*graph.Term `json:"nodes"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// entry caches the lowercased text of one term.
type entry struct {
	term     *graph.Term
	label    string
	shortID  string
	synonyms []string
	labelLen int
}

// Index searches a Store. The lowercase text cache is built on first use
// and never changes afterwards, so concurrent searches need no locking.
type Index struct {
	store   *graph.Store
	once    sync.Once
	entries []entry
}

// NewIndex creates an index over store. Nothing is scanned until the first
// search.
func NewIndex(store *graph.Store) *Index {
	return &Index{store: store}
}

func (idx *Index) build() {
	terms := idx.store.AllTerms()
	entries := make([]entry, len(terms))
	for i, t := range terms {
		syn := make([]string, len(t.Synonyms))
		for j, s := range t.Synonyms {
			syn[j] = strings.ToLower(s)
		}
		entries[i] = entry{
			term:     t,
			label:    strings.ToLower(t.Label),
			shortID:  strings.ToLower(t.ShortID),
			synonyms: syn,
			labelLen: utf8.RuneCountInString(t.Label),
		}
	}
	idx.entries = entries
}

// Warm builds the text cache now instead of on the first search.
func (idx *Index) Warm() {
	idx.once.Do(idx.build)
}

// Validate checks search parameters without running a scan.
func Validate(query string, page, pageSize int) error {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return graph.InvalidQueryError("search", "query must be at least %d characters", MinQueryLength)
	}
	if page < 1 {
		return graph.InvalidQueryError("search", "page must be at least 1, got %d", page)
	}
	if pageSize < MinPageSize || pageSize > MaxPageSize {
		return graph.InvalidQueryError("search", "page_size must be between %d and %d, got %d", MinPageSize, MaxPageSize, pageSize)
	}
	return nil
}

type match struct {
	e       *entry
	primary int
}

// Search returns page (1-indexed) of the terms matching query.
//
// A term matches when the lowercase query is a substring of its label, its
// short identifier, or any synonym. Matches in the label or short id rank
// before synonym-only matches; ties break on shorter label first and then on
// load order. Total counts every match, not just the page.
func (idx *Index) Search(query string, page, pageSize int) (*Result, error) {
	if err := Validate(query, page, pageSize); err != nil {
		return nil, err
	}
	idx.Warm()

	q := strings.ToLower(query)
	var matches []match
	for i := range idx.entries {
		e := &idx.entries[i]
		if strings.Contains(e.label, q) || strings.Contains(e.shortID, q) {
			matches = append(matches, match{e: e, primary: 0})
			continue
		}
		for _, s := range e.synonyms {
			if strings.Contains(s, q) {
				matches = append(matches, match{e: e, primary: 1})
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].primary != matches[j].primary {
			return matches[i].primary < matches[j].primary
		}
		return matches[i].e.labelLen < matches[j].e.labelLen
	})

	result := &Result{
		Terms:    []*graph.Term{},
		Total:    len(matches),
		Page:     page,
		PageSize: pageSize,
	}

	// Guard before multiplying so a huge page cannot overflow.
	if page-1 > len(matches)/pageSize {
		return result, nil
	}
	start := (page - 1) * pageSize
	if start >= len(matches) {
		return result, nil
	}
	end := min(start+pageSize, len(matches))
	result.Terms = make([]*graph.Term, 0, end-start)
	for _, m := range matches[start:end] {
		result.Terms = append(result.Terms, m.e.term)
	}
	return result, nil
}
