package graph

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// CypherBuilder builds parameterized Cypher statements.
// Values always travel as parameters; only validated identifiers are spliced into the text.
type CypherBuilder struct {
	params  map[string]any
	counter int
}

// NewCypherBuilder creates a query builder
func NewCypherBuilder() *CypherBuilder {
	return &CypherBuilder{
		params: make(map[string]any),
	}
}

// AddParam adds a parameter and returns its placeholder
func (b *CypherBuilder) AddParam(value any) string {
	paramName := fmt.Sprintf("p%d", b.counter)
	b.counter++
	b.params[paramName] = value
	return "$" + paramName
}

// Params returns all parameters for the query
func (b *CypherBuilder) Params() map[string]any {
	return b.params
}

// Statement packages the built query with its parameters
func (b *CypherBuilder) Statement(query string) Statement {
	return Statement{Query: query, Params: b.params}
}

// BuildMergeNode creates an idempotent MERGE on the label's unique key and SETs the remaining properties
func (b *CypherBuilder) BuildMergeNode(node GraphNode) (string, error) {
	if !isValidIdentifier(node.Label) {
		return "", fmt.Errorf("invalid node label: %s (must be alphanumeric + underscore)", node.Label)
	}
	uniqueKey := getUniqueKey(node.Label)
	if uniqueKey == "" {
		return "", fmt.Errorf("no unique key defined for label %s", node.Label)
	}

	keyParam := b.AddParam(node.Key)

	// Sorted so the generated text is stable
	keys := make([]string, 0, len(node.Properties))
	for key := range node.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	setClauses := make([]string, 0, len(keys))
	for _, key := range keys {
		if !isValidIdentifier(key) {
			return "", fmt.Errorf("invalid property key: %s (must be alphanumeric + underscore)", key)
		}
		if key == uniqueKey {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("n.%s = %s", key, b.AddParam(node.Properties[key])))
	}

	query := fmt.Sprintf("MERGE (n:%s {%s: %s})", node.Label, uniqueKey, keyParam)
	if len(setClauses) > 0 {
		query += " SET " + strings.Join(setClauses, ", ")
	}
	return query, nil
}

// BuildMergeEdge creates an idempotent MERGE of a relationship between two existing nodes
func (b *CypherBuilder) BuildMergeEdge(edge GraphEdge) (string, error) {
	for _, ident := range []string{edge.FromLabel, edge.ToLabel, edge.Type} {
		if !isValidIdentifier(ident) {
			return "", fmt.Errorf("invalid identifier in edge: %q", ident)
		}
	}
	fromKey := getUniqueKey(edge.FromLabel)
	toKey := getUniqueKey(edge.ToLabel)
	if fromKey == "" || toKey == "" {
		return "", fmt.Errorf("no unique key defined for edge %s-[%s]->%s", edge.FromLabel, edge.Type, edge.ToLabel)
	}

	fromParam := b.AddParam(edge.FromKey)
	toParam := b.AddParam(edge.ToKey)

	return fmt.Sprintf(
		"MATCH (from:%s {%s: %s}) MATCH (to:%s {%s: %s}) MERGE (from)-[:%s]->(to)",
		edge.FromLabel, fromKey, fromParam,
		edge.ToLabel, toKey, toParam,
		edge.Type,
	), nil
}

// isValidIdentifier validates that a string can be safely used as a Cypher identifier
func isValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}
