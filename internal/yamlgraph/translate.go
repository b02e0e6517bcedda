package yamlgraph

import (
	"fmt"

	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/vocab"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// pairs walks a mapping node in document order. A missing node yields
// nothing.
func pairs(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	n = resolve(n)
	switch n.Kind {
	case 0:
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping keys must be strings", k.Line)
		}
		if err := fn(k.Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n == nil {
		return &yaml.Node{}
	}
	return n
}

func bindNamespaces(ns *nodeid.Namespaces, n *yaml.Node) error {
	return pairs(n, func(prefix string, v *yaml.Node) error {
		v = resolve(v)
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: namespace %q must map to an IRI string", v.Line, prefix)
		}
		if err := ns.Bind(prefix, v.Value); err != nil {
			return fmt.Errorf("namespace %q: %w", prefix, err)
		}
		return nil
	})
}

func translateNode(store *graph.Store, n *nodeDoc) error {
	ns := store.Namespaces()
	id := ns.Expand(n.ID)
	if id.IsZero() {
		return fmt.Errorf("node id must not be empty")
	}
	store.AddNode(id)
	for _, t := range n.Types {
		store.AddType(id, ns.Expand(t))
	}

	err := pairs(&n.Links, func(pred string, v *yaml.Node) error {
		terms, err := linkTerms(ns, v)
		if err != nil {
			return fmt.Errorf("node %s, link %q: %w", n.ID, pred, err)
		}
		p := ns.Expand(pred)
		for _, t := range terms {
			if err := store.AddEdge(id, p, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = pairs(&n.Values, func(pred string, v *yaml.Node) error {
		t, err := literalTerm(v)
		if err != nil {
			return fmt.Errorf("node %s, value %q: %w", n.ID, pred, err)
		}
		return store.AddEdge(id, ns.Expand(pred), t)
	})
	if err != nil {
		return err
	}

	for _, h := range n.HoldsAt {
		if err := translateHoldsAt(store, id, h); err != nil {
			return fmt.Errorf("node %s, holds_at %q: %w", n.ID, h.Type, err)
		}
	}
	return nil
}

func translateHoldsAt(store *graph.Store, parent nodeid.ID, h *holdsAtDoc) error {
	ns := store.Namespaces()
	if h.Type == "" {
		return fmt.Errorf("holds_at needs a type")
	}
	tc := ns.Expand(h.ID)
	if tc.IsZero() {
		tc = graph.BlankID(parent, "holds-at")
	}
	store.AddType(tc, ns.Expand(h.Type))

	err := pairs(&h.Events, func(pred string, v *yaml.Node) error {
		v = resolve(v)
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: event %q must be a node id", v.Line, pred)
		}
		return store.AddEdge(tc, ns.Expand(pred), graph.Node(ns.Expand(v.Value)))
	})
	if err != nil {
		return err
	}
	return store.AddEdge(parent, vocab.PredHoldsAt, graph.Node(tc))
}

// linkTerms converts a link value into one term per edge: a top-level
// sequence adds one edge per element.
func linkTerms(ns *nodeid.Namespaces, n *yaml.Node) ([]graph.Term, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		t, err := nodeTerm(ns, n)
		if err != nil {
			return nil, err
		}
		return []graph.Term{t}, nil
	}
	out := make([]graph.Term, 0, len(n.Content))
	for _, item := range n.Content {
		t, err := nodeTerm(ns, item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func nodeTerm(ns *nodeid.Namespaces, n *yaml.Node) (graph.Term, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!str" {
			return graph.Node(ns.Expand(n.Value)), nil
		}
		return literalTerm(n)
	case yaml.SequenceNode:
		items := make([]graph.Term, 0, len(n.Content))
		for _, item := range n.Content {
			t, err := nodeTerm(ns, item)
			if err != nil {
				return graph.Term{}, err
			}
			items = append(items, t)
		}
		return graph.List(items...), nil
	default:
		return graph.Term{}, fmt.Errorf("line %d: unsupported link target", n.Line)
	}
}

func literalTerm(n *yaml.Node) (graph.Term, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.SequenceNode:
		items := make([]graph.Term, 0, len(n.Content))
		for _, item := range n.Content {
			t, err := literalTerm(item)
			if err != nil {
				return graph.Term{}, err
			}
			items = append(items, t)
		}
		return graph.List(items...), nil
	case yaml.ScalarNode:
		v, err := scalarValue(n)
		if err != nil {
			return graph.Term{}, err
		}
		return graph.Literal(v), nil
	default:
		return graph.Term{}, fmt.Errorf("line %d: unsupported value", n.Line)
	}
}

func scalarValue(n *yaml.Node) (cty.Value, error) {
	switch n.ShortTag() {
	case "!!str":
		return cty.StringVal(n.Value), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return cty.NilVal, err
		}
		return cty.NumberIntVal(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return cty.NilVal, err
		}
		return cty.NumberFloatVal(f), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(b), nil
	default:
		return cty.NilVal, fmt.Errorf("line %d: unsupported scalar %s", n.Line, n.ShortTag())
	}
}
