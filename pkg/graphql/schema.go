// Package graphql exposes the ontology queries as a GraphQL schema. Every
// resolver goes through query.Service, so GraphQL and REST share decoding,
// validation, metrics and error classification.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/query"
	"github.com/dd0wney/cluso-hpo/pkg/search"
	"github.com/dd0wney/cluso-hpo/pkg/traversal"
)

// resolveError carries the client-safe message and a machine readable code
// for a failed resolver. graphql-go copies Extensions into the response.
type resolveError struct {
	err error
}

func (e *resolveError) Error() string {
	return query.PublicMessage(e.err)
}

func (e *resolveError) Extensions() map[string]any {
	return map[string]any{"code": query.CodeFor(e.err)}
}

func (e *resolveError) Unwrap() error {
	return e.err
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &resolveError{err: err}
}

// termField resolves a scalar of the *graph.Term source.
func termField(typ graphql.Output, get func(*graph.Term) any) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			if t, ok := p.Source.(*graph.Term); ok {
				return get(t), nil
			}
			return nil, nil
		},
	}
}

var idArgs = graphql.FieldConfigArgument{
	"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
}

// NewSchema builds the schema over svc.
func NewSchema(svc *query.Service) (graphql.Schema, error) {
	stringList := graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))

	var termType *graphql.Object
	termType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Term",
		Description: "An ontology concept",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			termList := graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(termType)))
			return graphql.Fields{
				"id":         termField(graphql.NewNonNull(graphql.ID), func(t *graph.Term) any { return t.ID }),
				"label":      termField(graphql.NewNonNull(graphql.String), func(t *graph.Term) any { return t.Label }),
				"shortId":    termField(graphql.NewNonNull(graphql.String), func(t *graph.Term) any { return t.ShortID }),
				"definition": termField(graphql.NewNonNull(graphql.String), func(t *graph.Term) any { return t.Definition }),
				"synonyms":   termField(stringList, func(t *graph.Term) any { return t.Synonyms }),
				"parentIds":  termField(stringList, func(t *graph.Term) any { return t.Parents }),
				"childIds":   termField(stringList, func(t *graph.Term) any { return t.Children }),
				"parents": &graphql.Field{
					Type: termList,
					Resolve: func(p graphql.ResolveParams) (any, error) {
						t, _ := p.Source.(*graph.Term)
						if t == nil {
							return nil, nil
						}
						resp, err := svc.Parents(t.ID)
						if err != nil {
							return nil, wrap(err)
						}
						return resp.Parents, nil
					},
				},
				"children": &graphql.Field{
					Type: termList,
					Resolve: func(p graphql.ResolveParams) (any, error) {
						t, _ := p.Source.(*graph.Term)
						if t == nil {
							return nil, nil
						}
						resp, err := svc.Children(t.ID)
						if err != nil {
							return nil, wrap(err)
						}
						return resp.Children, nil
					},
				},
			}
		}),
	})
	termList := graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(termType)))

	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Edge",
		Description: "An is_a relation from the child term to its parent",
		Fields: graphql.Fields{
			"from": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"to":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	positionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Position",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"x":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"y":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	searchType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SearchResult",
		Fields: graphql.Fields{
			"nodes":    &graphql.Field{Type: termList},
			"total":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"page":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"pageSize": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	subgraphType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subgraph",
		Fields: graphql.Fields{
			"nodes":     &graphql.Field{Type: termList},
			"edges":     &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edgeType)))},
			"layout":    &graphql.Field{Type: graphql.String},
			"positions": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(positionType))},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Stats",
		Fields: graphql.Fields{
			"totalNodes": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"totalEdges": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"rootNode":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"term": &graphql.Field{
				Type: termType,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					t, err := svc.Term(p.Args["id"].(string))
					if err != nil {
						return nil, wrap(err)
					}
					return t, nil
				},
			},
			"parents": &graphql.Field{
				Type: termList,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					resp, err := svc.Parents(p.Args["id"].(string))
					if err != nil {
						return nil, wrap(err)
					}
					return resp.Parents, nil
				},
			},
			"children": &graphql.Field{
				Type: termList,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					resp, err := svc.Children(p.Args["id"].(string))
					if err != nil {
						return nil, wrap(err)
					}
					return resp.Children, nil
				},
			},
			"search": &graphql.Field{
				Type: searchType,
				Args: graphql.FieldConfigArgument{
					"q":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"pageSize": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: search.DefaultPageSize},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					resp, err := svc.Search(query.SearchRequest{
						Query:    p.Args["q"].(string),
						Page:     intArg(p.Args, "page"),
						PageSize: intArg(p.Args, "pageSize"),
					})
					if err != nil {
						return nil, wrap(err)
					}
					return map[string]any{
						"nodes":    resp.Nodes,
						"total":    resp.Total,
						"page":     resp.Page,
						"pageSize": resp.PageSize,
					}, nil
				},
			},
			"subgraph": &graphql.Field{
				Type: subgraphType,
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"depth":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: traversal.DefaultDepth},
					"layout": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					layout, _ := p.Args["layout"].(string)
					resp, err := svc.Subgraph(query.SubgraphRequest{
						ID:     p.Args["id"].(string),
						Depth:  intArg(p.Args, "depth"),
						Layout: layout,
					})
					if err != nil {
						return nil, wrap(err)
					}
					return subgraphResult(resp), nil
				},
			},
			"stats": &graphql.Field{
				Type: graphql.NewNonNull(statsType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					stats := svc.Stats()
					return map[string]any{
						"totalNodes": stats.TotalNodes,
						"totalEdges": stats.TotalEdges,
						"rootNode":   stats.RootNode,
					}, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

func intArg(args map[string]any, name string) int {
	v, _ := args[name].(int)
	return v
}

// subgraphResult flattens the response; positions follow node order.
func subgraphResult(resp *query.SubgraphResponse) map[string]any {
	edges := make([]map[string]any, len(resp.Edges))
	for i, e := range resp.Edges {
		edges[i] = map[string]any{"from": e.Child, "to": e.Parent}
	}

	out := map[string]any{
		"nodes": resp.Nodes,
		"edges": edges,
	}
	if resp.Layout != "" {
		positions := make([]map[string]any, 0, len(resp.Nodes))
		for _, n := range resp.Nodes {
			pos, ok := resp.Positions[n.ID]
			if !ok {
				continue
			}
			positions = append(positions, map[string]any{"id": n.ID, "x": pos.X, "y": pos.Y})
		}
		out["layout"] = resp.Layout
		out["positions"] = positions
	}
	return out
}
