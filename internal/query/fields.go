package query

import (
	"fmt"
	"strings"
)

// Field describes one client-visible property of a view type: its canonical
// name and an accessor reading the value from a populated view.
type Field[T any] struct {
	Name  string
	Value func(T) any
}

// View is a compile-time field-descriptor table for a public view type.
// It drives both field-list validation and shaping, replacing runtime
// reflection with an explicit, ordered table declared next to the view.
type View[T any] struct {
	fields []Field[T]
	index  map[string]int
}

// NewView builds a View from descriptors in declaration order. Views are
// wired by hand at startup, so a duplicate field name (case-insensitive)
// panics rather than returning an error.
func NewView[T any](fields ...Field[T]) View[T] {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		key := strings.ToLower(f.Name)
		if _, dup := index[key]; dup {
			panic(fmt.Sprintf("duplicate view field %q", f.Name))
		}
		index[key] = i
	}
	return View[T]{fields: fields, index: index}
}

// lookup resolves a requested token to a declared field, case-insensitively.
// When the direct match fails, a trailing "Id" disambiguation suffix (used
// by clients to qualify fields across joined resources) is stripped and the
// lookup retried.
func (v View[T]) lookup(token string) (Field[T], bool) {
	key := strings.ToLower(strings.TrimSpace(token))
	if i, ok := v.index[key]; ok {
		return v.fields[i], true
	}
	if trimmed, found := strings.CutSuffix(key, "id"); found && trimmed != "" {
		if i, ok := v.index[trimmed]; ok {
			return v.fields[i], true
		}
	}
	return Field[T]{}, false
}

// HasFields reports whether every name in the comma-separated field list is
// declared on the view. An empty or whitespace-only list is valid and is
// interpreted downstream as "all fields".
func (v View[T]) HasFields(fieldsCsv string) bool {
	if strings.TrimSpace(fieldsCsv) == "" {
		return true
	}
	for _, token := range strings.Split(fieldsCsv, ",") {
		if _, ok := v.lookup(token); !ok {
			return false
		}
	}
	return true
}

// Shape produces a property bag holding the requested fields of src in the
// order they were requested, or every declared field in declaration order
// when the list is empty. Keys carry the canonical declared name regardless
// of requested casing. src is never mutated; each call builds a fresh bag.
func (v View[T]) Shape(src T, fieldsCsv string) (*Shaped, error) {
	shaped := NewShaped()

	if strings.TrimSpace(fieldsCsv) == "" {
		for _, f := range v.fields {
			shaped.Set(f.Name, f.Value(src))
		}
		return shaped, nil
	}

	for _, token := range strings.Split(fieldsCsv, ",") {
		f, ok := v.lookup(token)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", strings.TrimSpace(token))
		}
		shaped.Set(f.Name, f.Value(src))
	}
	return shaped, nil
}

// ShapeAll shapes every element of items with the same field list.
func ShapeAll[T any](v View[T], items []T, fieldsCsv string) ([]*Shaped, error) {
	shaped := make([]*Shaped, 0, len(items))
	for _, item := range items {
		s, err := v.Shape(item, fieldsCsv)
		if err != nil {
			return nil, err
		}
		shaped = append(shaped, s)
	}
	return shaped, nil
}
