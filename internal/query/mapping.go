// Package query implements the resource projection engine: it validates
// untyped client query input (page windows, order-by expressions, field
// lists) and translates it into typed, storage-safe query plans, pagination
// metadata, field-shaped representations, and hypermedia links.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotRegistered is returned when no property mapping exists for the
// requested view/entity pair.
var ErrNotRegistered = errors.New("no property mapping registered")

// PropertyMapping describes how one client-visible sortable field translates
// to the storage layer. A single field may fan out to several storage
// columns (e.g. "name" sorts by first_name then last_name). Reverse inverts
// the requested direction, for fields whose natural order is opposite their
// backing column ("age" ascending means date_of_birth descending).
type PropertyMapping struct {
	Columns []string
	Reverse bool
}

// MappingSet holds the property mappings for one view/entity pair, keyed by
// lower-cased client field name.
type MappingSet map[string]PropertyMapping

// Registry maps (view type, entity type) pairs to their mapping sets.
// It is populated once during startup and read-only afterwards, so request
// handlers can read it concurrently without locking.
type Registry struct {
	sets map[string]MappingSet
}

// NewRegistry returns an empty registry ready for startup registration.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]MappingSet)}
}

func pairKey(view, entity string) string {
	return view + "->" + entity
}

// Register stores the mapping set for a view/entity pair. Field names are
// normalised to lower case so later lookups are case-insensitive.
// Registering the same pair twice is a configuration error.
func (r *Registry) Register(view, entity string, mappings MappingSet) error {
	key := pairKey(view, entity)
	if _, exists := r.sets[key]; exists {
		return fmt.Errorf("property mapping for %s already registered", key)
	}

	normalised := make(MappingSet, len(mappings))
	for field, mapping := range mappings {
		normalised[strings.ToLower(field)] = mapping
	}
	r.sets[key] = normalised

	return nil
}

// Resolve returns the mapping set for a view/entity pair, or ErrNotRegistered
// if the pair was never registered. Unknown pairs fail closed: callers must
// treat the error as fatal rather than fall back to unvalidated input.
func (r *Registry) Resolve(view, entity string) (MappingSet, error) {
	set, ok := r.sets[pairKey(view, entity)]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNotRegistered, pairKey(view, entity))
	}
	return set, nil
}

// ValidOrderBy reports whether every field referenced by the order-by
// expression is a registered sortable field for the view/entity pair.
// An empty or whitespace-only expression is valid: it simply means no sort.
func (r *Registry) ValidOrderBy(view, entity, orderBy string) bool {
	if strings.TrimSpace(orderBy) == "" {
		return true
	}

	set, err := r.Resolve(view, entity)
	if err != nil {
		return false
	}

	for _, clause := range ParseOrderBy(orderBy) {
		if _, ok := set[strings.ToLower(clause.Field)]; !ok {
			return false
		}
	}
	return true
}
