package graph

import (
	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Label returns the compact display form of id.
func Label(g Graph, id nodeid.ID) string {
	return g.Namespaces().Compact(id)
}

// One returns the single object of (subject, predicate).
func One(g Graph, subject, predicate nodeid.ID) (Term, error) {
	objs := g.ObjectsOf(subject, predicate)
	if len(objs) != 1 {
		return Term{}, bdderr.Constraint(subject, 1, len(objs),
			"%s: expected exactly one '%s'", Label(g, subject), Label(g, predicate))
	}
	return objs[0], nil
}

// OneNode returns the single node object of (subject, predicate).
func OneNode(g Graph, subject, predicate nodeid.ID) (nodeid.ID, error) {
	t, err := One(g, subject, predicate)
	if err != nil {
		return "", err
	}
	if !t.IsNode() {
		return "", bdderr.Invalid(subject, "%s: '%s' must reference a node, got %s %s",
			Label(g, subject), Label(g, predicate), t.Kind, t)
	}
	return t.ID, nil
}

// OptionalOne returns the object of (subject, predicate) when there is at
// most one, and whether it was present.
func OptionalOne(g Graph, subject, predicate nodeid.ID) (Term, bool, error) {
	objs := g.ObjectsOf(subject, predicate)
	switch len(objs) {
	case 0:
		return Term{}, false, nil
	case 1:
		return objs[0], true, nil
	default:
		return Term{}, false, bdderr.Constraint(subject, 1, len(objs),
			"%s: expected at most one '%s'", Label(g, subject), Label(g, predicate))
	}
}

// Objects returns the objects of (subject, predicate), flattening a single
// list term into its items so `p = [a, b]` and two `p` edges read the same.
func Objects(g Graph, subject, predicate nodeid.ID) []Term {
	objs := g.ObjectsOf(subject, predicate)
	if len(objs) == 1 && objs[0].Kind == ListTerm {
		return objs[0].Items
	}
	return objs
}

// Nodes returns the objects of (subject, predicate) as node ids.
func Nodes(g Graph, subject, predicate nodeid.ID) ([]nodeid.ID, error) {
	objs := Objects(g, subject, predicate)
	ids := make([]nodeid.ID, 0, len(objs))
	for _, t := range objs {
		if !t.IsNode() {
			return nil, bdderr.Invalid(subject, "%s: '%s' must reference nodes, got %s %s",
				Label(g, subject), Label(g, predicate), t.Kind, t)
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// Bool reads an optional boolean literal, returning def when absent.
func Bool(g Graph, subject, predicate nodeid.ID, def bool) (bool, error) {
	t, ok, err := OptionalOne(g, subject, predicate)
	if err != nil || !ok {
		return def, err
	}
	v, err := literalAs(g, subject, predicate, t, cty.Bool)
	if err != nil {
		return def, err
	}
	var b bool
	if err := gocty.FromCtyValue(v, &b); err != nil {
		return def, bdderr.Invalid(subject, "%s: '%s' is not a boolean", Label(g, subject), Label(g, predicate)).Wrap(err)
	}
	return b, nil
}

// Int reads an optional integer literal and reports whether it was present.
func Int(g Graph, subject, predicate nodeid.ID) (int, bool, error) {
	t, ok, err := OptionalOne(g, subject, predicate)
	if err != nil || !ok {
		return 0, false, err
	}
	v, err := literalAs(g, subject, predicate, t, cty.Number)
	if err != nil {
		return 0, false, err
	}
	var i int
	if err := gocty.FromCtyValue(v, &i); err != nil {
		return 0, false, bdderr.Invalid(subject, "%s: '%s' is not an integer", Label(g, subject), Label(g, predicate)).Wrap(err)
	}
	return i, true, nil
}

func literalAs(g Graph, subject, predicate nodeid.ID, t Term, want cty.Type) (cty.Value, error) {
	if t.Kind != LiteralTerm {
		return cty.NilVal, bdderr.Invalid(subject, "%s: '%s' must be a literal, got %s %s",
			Label(g, subject), Label(g, predicate), t.Kind, t)
	}
	v, err := convert.Convert(t.Literal, want)
	if err != nil || v.IsNull() || !v.IsKnown() {
		e := bdderr.Invalid(subject, "%s: '%s' must be a %s", Label(g, subject), Label(g, predicate), want.FriendlyName())
		if err != nil {
			e = e.Wrap(err)
		}
		return cty.NilVal, e
	}
	return v, nil
}
