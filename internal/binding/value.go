// Package binding holds the values a scenario variable can take and the
// variable-to-value maps threaded through clause rendering.
package binding

import (
	"strings"

	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Value is a value bound to a scenario variable.
type Value interface {
	// Render returns the text used inside clause strings.
	Render(ns *nodeid.Namespaces) string
	isValue()
}

// Node is a single graph node such as an object, workspace or agent.
type Node struct {
	ID nodeid.ID
}

// Literal is a non-node element of a literal domain.
type Literal struct {
	Value cty.Value
}

// Tuple is a composite value produced by a set enumeration. It stays a single
// value when bound; quantifiers iterate over its items.
type Tuple struct {
	Items []Value
}

// Exists is the disjunction bound by a ThereExists quantifier.
type Exists struct {
	Items []Value
}

func (Node) isValue()    {}
func (Literal) isValue() {}
func (Tuple) isValue()   {}
func (Exists) isValue()  {}

// Render implements Value.
func (n Node) Render(ns *nodeid.Namespaces) string {
	return ns.Compact(n.ID)
}

// Render implements Value.
func (l Literal) Render(_ *nodeid.Namespaces) string {
	v := l.Value
	if v.IsNull() || !v.IsKnown() {
		return ""
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	default:
		return v.GoString()
	}
}

// Render implements Value.
func (t Tuple) Render(ns *nodeid.Namespaces) string {
	return renderList(t.Items, ns)
}

// Render implements Value.
func (e Exists) Render(ns *nodeid.Namespaces) string {
	return "any of " + renderList(e.Items, ns)
}

func renderList(items []Value, ns *nodeid.Namespaces) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(',')
		}
		switch item.(type) {
		case Tuple, Exists:
			sb.WriteString(item.Render(ns))
		default:
			sb.WriteByte('\'')
			sb.WriteString(item.Render(ns))
			sb.WriteByte('\'')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Items returns the elements of an iterable value.
func Items(v Value) ([]Value, bool) {
	t, ok := v.(Tuple)
	if !ok {
		return nil, false
	}
	return t.Items, true
}

// FromTerm converts a graph term into a value. List terms become tuples.
func FromTerm(t graph.Term) Value {
	switch t.Kind {
	case graph.NodeTerm:
		return Node{ID: t.ID}
	case graph.LiteralTerm:
		return Literal{Value: t.Literal}
	default:
		items := make([]Value, len(t.Items))
		for i, item := range t.Items {
			items[i] = FromTerm(item)
		}
		return Tuple{Items: items}
	}
}

// FromTerms converts each term with FromTerm.
func FromTerms(terms []graph.Term) []Value {
	out := make([]Value, len(terms))
	for i, t := range terms {
		out[i] = FromTerm(t)
	}
	return out
}
