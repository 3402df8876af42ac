package query

import (
	"fmt"
	"strings"
)

// OrderClause is one parsed term of a client order-by expression.
type OrderClause struct {
	Field      string
	Descending bool
}

// ParseOrderBy splits a comma-separated order-by expression into clauses.
// Each clause is trimmed and an optional trailing "asc" or "desc" token
// (case-insensitive) sets the direction. Empty clauses are dropped.
func ParseOrderBy(orderBy string) []OrderClause {
	var clauses []OrderClause

	for _, raw := range strings.Split(orderBy, ",") {
		clause := strings.TrimSpace(raw)
		if clause == "" {
			continue
		}

		field := clause
		descending := false
		if i := strings.LastIndexByte(clause, ' '); i >= 0 {
			switch strings.ToLower(strings.TrimSpace(clause[i+1:])) {
			case "desc":
				descending = true
				field = strings.TrimSpace(clause[:i])
			case "asc":
				field = strings.TrimSpace(clause[:i])
			}
		}

		clauses = append(clauses, OrderClause{Field: field, Descending: descending})
	}

	return clauses
}

// SortKey is a single storage-level ordering term ready to apply to a query.
// Column always comes from a registered mapping, never from raw client
// input, so it is safe to interpolate into ORDER BY clauses.
type SortKey struct {
	Column     string
	Descending bool
}

// SortKeys expands an order-by expression into storage sort keys. Each
// clause expands to the mapping's columns in declared order, each inheriting
// the clause direction XOR the mapping's Reverse flag. The expression must
// already have passed ValidOrderBy; an unknown field at this stage is a
// wiring bug, not user input, and is reported as an internal error.
func (s MappingSet) SortKeys(orderBy string) ([]SortKey, error) {
	var keys []SortKey

	for _, clause := range ParseOrderBy(orderBy) {
		mapping, ok := s[strings.ToLower(clause.Field)]
		if !ok {
			return nil, fmt.Errorf("unvalidated order-by field %q reached sort key building", clause.Field)
		}
		for _, column := range mapping.Columns {
			keys = append(keys, SortKey{
				Column:     column,
				Descending: clause.Descending != mapping.Reverse,
			})
		}
	}

	return keys, nil
}
