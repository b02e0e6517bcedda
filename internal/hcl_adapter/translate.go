package hcl_adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/vocab"
	"github.com/zclconf/go-cty/cty"
)

// translateNode adds one node block to store.
func (l *Loader) translateNode(ctx context.Context, store *graph.Store, n *Node) error {
	ns := store.Namespaces()
	id := ns.Expand(n.ID)
	if id.IsZero() {
		return fmt.Errorf("node id must not be empty")
	}
	store.AddNode(id)
	for _, t := range n.Types {
		store.AddType(id, ns.Expand(t))
	}

	for _, link := range n.Links {
		val, diags := link.To.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("node %s, link %q: %w", n.ID, link.Predicate, diags)
		}
		terms, err := linkTerms(ns, val)
		if err != nil {
			return fmt.Errorf("%s: node %s, link %q: %w", rangeOf(link.To), n.ID, link.Predicate, err)
		}
		pred := ns.Expand(link.Predicate)
		for _, t := range terms {
			if err := store.AddEdge(id, pred, t); err != nil {
				return err
			}
		}
	}

	for _, v := range n.Values {
		val, diags := v.Is.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("node %s, value %q: %w", n.ID, v.Predicate, diags)
		}
		t, err := literalTerm(val)
		if err != nil {
			return fmt.Errorf("%s: node %s, value %q: %w", rangeOf(v.Is), n.ID, v.Predicate, err)
		}
		if err := store.AddEdge(id, ns.Expand(v.Predicate), t); err != nil {
			return err
		}
	}

	for _, h := range n.HoldsAt {
		if err := translateHoldsAt(store, id, h); err != nil {
			return fmt.Errorf("node %s, holds_at %q: %w", n.ID, h.Type, err)
		}
	}

	ctxlog.FromContext(ctx).Debug("Translated node block.", "id", n.ID, "types", len(n.Types), "links", len(n.Links))
	return nil
}

func translateHoldsAt(store *graph.Store, parent nodeid.ID, h *HoldsAt) error {
	ns := store.Namespaces()
	var tc nodeid.ID
	if h.ID != nil && *h.ID != "" {
		tc = ns.Expand(*h.ID)
	} else {
		tc = graph.BlankID(parent, "holds-at")
	}
	store.AddType(tc, ns.Expand(h.Type))

	preds := make([]string, 0, len(h.Events))
	for p := range h.Events {
		preds = append(preds, p)
	}
	sort.Strings(preds)
	for _, p := range preds {
		if err := store.AddEdge(tc, ns.Expand(p), graph.Node(ns.Expand(h.Events[p]))); err != nil {
			return err
		}
	}
	return store.AddEdge(parent, vocab.PredHoldsAt, graph.Node(tc))
}

// linkTerms converts the `to` value of a link into one term per edge.
func linkTerms(ns *nodeid.Namespaces, val cty.Value) ([]graph.Term, error) {
	if val.IsNull() {
		return nil, fmt.Errorf("link target must not be null")
	}
	ty := val.Type()
	if !(ty.IsTupleType() || ty.IsListType() || ty.IsSetType()) {
		t, err := nodeTerm(ns, val)
		if err != nil {
			return nil, err
		}
		return []graph.Term{t}, nil
	}
	var out []graph.Term
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		t, err := nodeTerm(ns, elem)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func nodeTerm(ns *nodeid.Namespaces, val cty.Value) (graph.Term, error) {
	if val.IsNull() {
		return graph.Term{}, fmt.Errorf("link target must not be null")
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return graph.Node(ns.Expand(val.AsString())), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var items []graph.Term
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			t, err := nodeTerm(ns, elem)
			if err != nil {
				return graph.Term{}, err
			}
			items = append(items, t)
		}
		return graph.List(items...), nil
	case ty == cty.Number || ty == cty.Bool:
		return graph.Literal(val), nil
	default:
		return graph.Term{}, fmt.Errorf("unsupported link target of type %s", ty.FriendlyName())
	}
}

func literalTerm(val cty.Value) (graph.Term, error) {
	if val.IsNull() {
		return graph.Term{}, fmt.Errorf("value must not be null")
	}
	ty := val.Type()
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		var items []graph.Term
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			t, err := literalTerm(elem)
			if err != nil {
				return graph.Term{}, err
			}
			items = append(items, t)
		}
		return graph.List(items...), nil
	}
	if !ty.IsPrimitiveType() {
		return graph.Term{}, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
	return graph.Literal(val), nil
}

func rangeOf(expr hcl.Expression) string {
	r := expr.Range()
	return r.String()
}
