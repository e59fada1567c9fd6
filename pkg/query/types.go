package query

import (
	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/visualization"
)

// SearchRequest asks for one page of substring matches.
type SearchRequest struct {
	Query    string `query:"q" validate:"min=2"`
	Page     int    `query:"page" validate:"gte=1"`
	PageSize int    `query:"page_size" validate:"gte=1,lte=100"`
}

// SearchResponse is one page of matches plus the unpaginated total.
type SearchResponse struct {
	Nodes    []*graph.Term `json:"nodes"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// SubgraphRequest asks for the neighbourhood of a term. ID may still be
// percent-encoded.
type SubgraphRequest struct {
	ID     string `json:"id" validate:"termid"`
	Depth  int    `query:"depth" validate:"gte=1,lte=5"`
	Layout string `query:"layout" validate:"omitempty,oneof=hierarchical circular force"`
}

// SubgraphResponse carries the expanded nodes and edges, and positions
// when a layout was requested.
type SubgraphResponse struct {
	Nodes     []*graph.Term                     `json:"nodes"`
	Edges     []graph.Relation                  `json:"edges"`
	Layout    string                            `json:"layout,omitempty"`
	Positions map[string]visualization.Position `json:"positions,omitempty"`
}

// ParentsResponse wraps the direct parents of a term.
type ParentsResponse struct {
	Parents []*graph.Term `json:"parents"`
}

// ChildrenResponse wraps the direct children of a term.
type ChildrenResponse struct {
	Children []*graph.Term `json:"children"`
}
