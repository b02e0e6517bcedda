package graph

import (
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// TermKind tells which field of a Term is set.
type TermKind int

const (
	NodeTerm TermKind = iota
	LiteralTerm
	ListTerm
)

func (k TermKind) String() string {
	switch k {
	case NodeTerm:
		return "node"
	case LiteralTerm:
		return "literal"
	default:
		return "list"
	}
}

// Term is the object of an edge.
type Term struct {
	Kind    TermKind
	ID      nodeid.ID
	Literal cty.Value
	Items   []Term
}

// Node returns a node reference term.
func Node(id nodeid.ID) Term {
	return Term{Kind: NodeTerm, ID: id}
}

// Literal returns a literal term.
func Literal(v cty.Value) Term {
	return Term{Kind: LiteralTerm, Literal: v}
}

// List returns an ordered list term.
func List(items ...Term) Term {
	return Term{Kind: ListTerm, Items: items}
}

// IsNode reports whether t references a node.
func (t Term) IsNode() bool {
	return t.Kind == NodeTerm
}

// String renders the term for log and error messages.
func (t Term) String() string {
	switch t.Kind {
	case NodeTerm:
		return t.ID.String()
	case LiteralTerm:
		if t.Literal.IsKnown() && !t.Literal.IsNull() && t.Literal.Type() == cty.String {
			return t.Literal.AsString()
		}
		return t.Literal.GoString()
	default:
		parts := make([]string, len(t.Items))
		for i, item := range t.Items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
}

// BlankID derives a stable id for an anonymous node owned by parent, so
// reloading the same files yields the same ids.
func BlankID(parent nodeid.ID, role string) nodeid.ID {
	return nodeid.ID("urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(string(parent)+"#"+role)).String())
}
