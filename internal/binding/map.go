package binding

import (
	"slices"

	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Map binds scenario variables to values. It is immutable: With returns an
// extended copy so sibling ForAll branches never see each other's bindings.
type Map struct {
	keys []nodeid.ID
	vals map[nodeid.ID]Value
}

// NewMap binds vars[i] to vals[i]. Both slices must have the same length.
func NewMap(vars []nodeid.ID, vals []Value) Map {
	if len(vars) != len(vals) {
		panic("binding: variables and values differ in length")
	}
	m := Map{vals: make(map[nodeid.ID]Value, len(vars))}
	for i, v := range vars {
		m = m.set(v, vals[i])
	}
	return m
}

func (m Map) set(variable nodeid.ID, v Value) Map {
	if _, exists := m.vals[variable]; !exists {
		m.keys = append(m.keys, variable)
	}
	m.vals[variable] = v
	return m
}

// Get returns the value bound to variable.
func (m Map) Get(variable nodeid.ID) (Value, bool) {
	v, ok := m.vals[variable]
	return v, ok
}

// With returns a copy of m with variable bound to v.
func (m Map) With(variable nodeid.ID, v Value) Map {
	c := Map{
		keys: slices.Clone(m.keys),
		vals: make(map[nodeid.ID]Value, len(m.vals)+1),
	}
	for k, val := range m.vals {
		c.vals[k] = val
	}
	return c.set(variable, v)
}

// Keys returns the bound variables in binding order.
func (m Map) Keys() []nodeid.ID {
	return slices.Clone(m.keys)
}

// Len returns the number of bound variables.
func (m Map) Len() int {
	return len(m.keys)
}
