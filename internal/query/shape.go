package query

import (
	"bytes"
	"encoding/json"
)

// Shaped is an order-preserving property bag: the partial representation of
// a view produced by shaping. Keys serialise to JSON in insertion order,
// which lets a trailing "links" entry ride along after the data fields.
type Shaped struct {
	keys   []string
	values map[string]any
}

// NewShaped returns an empty property bag.
func NewShaped() *Shaped {
	return &Shaped{values: make(map[string]any)}
}

// Set stores value under key. Re-setting an existing key overwrites the
// value but keeps the key's original position.
func (s *Shaped) Set(key string, value any) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *Shaped) Get(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (s *Shaped) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Len returns the number of entries in the bag.
func (s *Shaped) Len() int {
	return len(s.keys)
}

// MarshalJSON writes the bag as a JSON object with keys in insertion order.
func (s *Shaped) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		value, err := json.Marshal(s.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
