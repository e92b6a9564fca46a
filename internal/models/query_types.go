// internal/models/query_types.go
package models

// QueryKind is the outcome of classifying a raw query.
type QueryKind string

const (
	QueryKindPlain    QueryKind = "plain"
	QueryKindOperator QueryKind = "operator-query"
)

// Classification is derived once per query and never mutated.
// ContextDescription is non-empty only for operator queries.
type Classification struct {
	Kind               QueryKind `json:"kind"`
	ContextDescription string    `json:"contextDescription,omitempty"`
}

// IsOperatorQuery reports whether the query used advanced search syntax.
func (c Classification) IsOperatorQuery() bool {
	return c.Kind == QueryKindOperator
}
