// Package metadata provides the ordered key/value container every decoder
// populates.
package metadata

import (
	"bytes"
	"encoding/json"
)

// Map is an insertion-ordered string map. Keys are unique; Set replaces the
// value of an existing key in place and appends new keys at the end.
type Map struct {
	index  map[string]int
	keys   []string
	values []string
}

// New creates an empty Map
func New() *Map {
	return &Map{index: make(map[string]int)}
}

// Set inserts or replaces the value stored under key
func (m *Map) Set(key, value string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.values[i] = value
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// Get returns the value stored under key
func (m *Map) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.values[i], true
}

// Has reports whether key is present
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Each calls fn for every entry in insertion order until fn returns false
func (m *Map) Each(fn func(key, value string) bool) {
	if m == nil {
		return
	}
	for i, k := range m.keys {
		if !fn(k, m.values[i]) {
			return
		}
	}
}

// Merge upserts every entry of src into m. Values from src win on collision.
func (m *Map) Merge(src *Map) {
	src.Each(func(k, v string) bool {
		m.Set(k, v)
		return true
	})
}

// Clone returns an independent copy of m
func (m *Map) Clone() *Map {
	c := New()
	c.Merge(m)
	return c
}

// Equal reports whether both maps hold the same entries in the same order
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	for i, k := range m.keys {
		if o.keys[i] != k || o.values[i] != m.values[i] {
			return false
		}
	}
	return true
}

// ToMap converts the entries to a plain Go map, dropping the order
func (m *Map) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	m.Each(func(k, v string) bool {
		out[k] = v
		return true
	})
	return out
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the input
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = Map{index: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		m.Set(key, value)
	}
	_, err := dec.Token()
	return err
}
