// Package graph holds the immutable ontology model: the term table and the
// is_a relations between terms. A Store is built once from a parsed
// document and is safe for unsynchronised concurrent reads afterwards.
package graph

import "strings"

// OBOPrefix is the namespace stripped from identifiers to form short ids.
const OBOPrefix = "http://purl.obolibrary.org/obo/"

// DefaultLabel is used for terms whose source node has no label.
const DefaultLabel = "Unknown"

// DefaultRootID is the HPO root term ("All").
const DefaultRootID = OBOPrefix + "HP_0000001"

// Term is one concept of the taxonomy. Parents and Children hold
// identifiers in load order. Terms returned by a Store are shared and
// must be treated as read-only.
type Term struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	ShortID    string   `json:"full_id"`
	Definition string   `json:"definition"`
	Synonyms   []string `json:"synonyms"`
	Parents    []string `json:"parents"`
	Children   []string `json:"children"`
}

// Relation is a directed is_a edge from the more specific term to the more
// general one.
type Relation struct {
	Child  string `json:"from"`
	Parent string `json:"to"`
}

// ShortID strips the OBO namespace from id.
func ShortID(id string) string {
	return strings.ReplaceAll(id, OBOPrefix, "")
}
