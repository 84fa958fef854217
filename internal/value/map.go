package value

import (
	"encoding/json"
	"strings"
)

// Map is an identifier to value mapping that remembers binding order
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap creates an empty mapping
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set binds identifier to v. Rebinding an identifier keeps its original position.
func (m *Map) Set(identifier string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, exists := m.values[identifier]; !exists {
		m.keys = append(m.keys, identifier)
	}
	m.values[identifier] = v
}

// Get returns the value bound to identifier at this level of the mapping
func (m *Map) Get(identifier string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[identifier]
	return v, ok
}

// Lookup searches the mapping and any nested records depth-first, in
// binding order, for identifier
func (m *Map) Lookup(identifier string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	if v, ok := m.values[identifier]; ok {
		return v, true
	}
	for _, key := range m.keys {
		if rec, ok := m.values[key].(Record); ok {
			if v, found := rec.Map.Lookup(identifier); found {
				return v, true
			}
		}
	}
	return nil, false
}

// Keys returns the bound identifiers in binding order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of bound identifiers
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Flatten inlines the bindings of nested records into a single level. The
// order is the depth-first binding order; lists are kept as they are.
func (m *Map) Flatten() *Map {
	flat := NewMap()
	m.flattenInto(flat)
	return flat
}

func (m *Map) flattenInto(flat *Map) {
	if m == nil {
		return
	}
	for _, key := range m.keys {
		v := m.values[key]
		if rec, ok := v.(Record); ok {
			rec.Map.flattenInto(flat)
			continue
		}
		flat.Set(key, v)
	}
}

// Native converts the mapping into a map of plain Go values
func (m *Map) Native() map[string]any {
	result := make(map[string]any, m.Len())
	if m == nil {
		return result
	}
	for _, key := range m.keys {
		result[key] = m.values[key].Native()
	}
	return result
}

// Equal reports whether both mappings bind the same identifiers, in the same
// order, to equal values
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, key := range m.Keys() {
		if other.keys[i] != key {
			return false
		}
		if !Equal(m.values[key], other.values[key]) {
			return false
		}
	}
	return true
}

// String renders the mapping as {key: value, ...} in binding order
func (m *Map) String() string {
	parts := make([]string, 0, m.Len())
	for _, key := range m.Keys() {
		parts = append(parts, key+": "+m.values[key].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON encodes the mapping as a JSON object in binding order
func (m *Map) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')

		var v []byte
		switch val := m.values[key].(type) {
		case Record:
			v, err = val.Map.MarshalJSON()
		case List:
			v, err = marshalList(val)
		default:
			v, err = json.Marshal(val.Native())
		}
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func marshalList(l List) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range l {
		if i > 0 {
			b.WriteByte(',')
		}
		var v []byte
		var err error
		switch val := item.(type) {
		case Record:
			v, err = val.Map.MarshalJSON()
		case List:
			v, err = marshalList(val)
		default:
			v, err = json.Marshal(val.Native())
		}
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte(']')
	return []byte(b.String()), nil
}
