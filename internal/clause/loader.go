// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package clause

import (
	"context"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/binding"
	"github.com/specialistvlad/bddgrid/internal/combinatorics"
	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

type loader struct {
	ctx     context.Context
	g       graph.Graph
	reg     *registry.Registry
	steps   Steps
	tree    *Tree
	visited map[nodeid.ID]struct{}
	onPath  map[nodeid.ID]struct{}
}

// Load walks the clause trees hanging off roots (a scenario template and a
// scenario variant) depth-first with one shared visited set and returns the
// merged tree. Any node reached twice fails the load.
func Load(ctx context.Context, g graph.Graph, reg *registry.Registry, steps Steps, roots ...nodeid.ID) (*Tree, error) {
	l := &loader{
		ctx:     ctx,
		g:       g,
		reg:     reg,
		steps:   steps,
		tree:    newTree(),
		visited: make(map[nodeid.ID]struct{}),
		onPath:  make(map[nodeid.ID]struct{}),
	}

	var top []nodeid.ID
	for _, root := range roots {
		if err := l.enter(root); err != nil {
			return nil, err
		}
		children, err := graph.Nodes(g, root, vocab.PredHasClause)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if err := l.load(child, nil); err != nil {
				return nil, err
			}
			c := l.tree.Clauses[child]
			l.tree.ByStep[c.ClauseStep()] = append(l.tree.ByStep[c.ClauseStep()], child)
			top = append(top, child)
		}
		delete(l.onPath, root)
	}

	var scope nodeid.ID
	if len(roots) > 0 {
		scope = roots[len(roots)-1]
	}
	if err := l.checkWhen(scope, top); err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Clause tree loaded.",
		"roots", len(roots), "clauses", len(l.tree.Clauses), "variables", len(l.tree.Variables))
	return l.tree, nil
}

func (l *loader) enter(id nodeid.ID) error {
	if _, ok := l.visited[id]; ok {
		if _, cyclic := l.onPath[id]; cyclic {
			return bdderr.Loop(id)
		}
		return bdderr.Structural(id, "duplicate clause %s is registered more than once", graph.Label(l.g, id))
	}
	l.visited[id] = struct{}{}
	l.onPath[id] = struct{}{}
	return nil
}

func (l *loader) load(id nodeid.ID, parent *Quantifier) error {
	if err := l.enter(id); err != nil {
		return err
	}
	defer delete(l.onPath, id)

	step, err := l.stepOf(id)
	if err != nil {
		return err
	}
	if parent != nil && parent.Step != step {
		return bdderr.Structural(id, "clause %s is a %s clause nested in %s quantifier %s",
			graph.Label(l.g, id), step, parent.Step, graph.Label(l.g, parent.ID))
	}

	var c Clause
	switch {
	case l.g.HasType(id, vocab.TypeFluentClause):
		c, err = l.loadFluent(id, step)
	case l.g.HasType(id, vocab.TypeWhenBehaviour):
		c, err = l.loadBehaviour(id, step)
	case l.g.HasType(id, vocab.TypeForAll):
		c, err = l.loadQuantifier(id, step, ForAll)
	case l.g.HasType(id, vocab.TypeThereExists):
		c, err = l.loadQuantifier(id, step, ThereExists)
	default:
		return bdderr.UnhandledType(id, "clause", l.g.TypesOf(id))
	}
	if err != nil {
		return err
	}

	l.tree.Clauses[id] = c
	for _, v := range c.Refs() {
		l.tree.addRef(v)
	}
	return nil
}

func (l *loader) stepOf(id nodeid.ID) (Step, error) {
	target, err := graph.OneNode(l.g, id, vocab.PredClauseOf)
	if err != nil {
		return 0, err
	}
	step, ok := l.steps.StepOf(target)
	if !ok {
		return 0, bdderr.Structural(id, "clause %s: '%s' target %s is not a step of the scenario",
			graph.Label(l.g, id), graph.Label(l.g, vocab.PredClauseOf), graph.Label(l.g, target))
	}
	return step, nil
}

func (l *loader) loadFluent(id nodeid.ID, step Step) (Clause, error) {
	fluent, err := graph.OneNode(l.g, id, vocab.PredHolds)
	if err != nil {
		return nil, err
	}
	h, err := l.reg.Fluent(fluent, l.g.TypesOf(fluent))
	if err != nil {
		return nil, err
	}
	args, err := h.Load(l.g, id)
	if err != nil {
		return nil, err
	}
	tc, err := l.loadTime(id)
	if err != nil {
		return nil, err
	}
	return &FluentClause{ID: id, Step: step, Fluent: fluent, Handler: h, Args: args, Time: tc}, nil
}

func (l *loader) loadBehaviour(id nodeid.ID, step Step) (Clause, error) {
	bhv, err := graph.OneNode(l.g, id, vocab.PredOfBehaviour)
	if err != nil {
		return nil, err
	}
	h, err := l.reg.Behaviour(bhv, l.g.TypesOf(bhv))
	if err != nil {
		return nil, err
	}
	args, err := h.Load(l.g, id)
	if err != nil {
		return nil, err
	}
	return &BehaviourClause{ID: id, Step: step, Behaviour: bhv, Handler: h, Args: args}, nil
}

func (l *loader) loadQuantifier(id nodeid.ID, step Step, kind QuantifierKind) (Clause, error) {
	variable, err := graph.OneNode(l.g, id, vocab.PredRefVariable)
	if err != nil {
		return nil, err
	}
	set, err := l.loadSet(id)
	if err != nil {
		return nil, err
	}
	q := &Quantifier{ID: id, Step: step, Kind: kind, Variable: variable, InSet: set}
	l.tree.addQuantified(variable)

	children, err := graph.Nodes(l.g, id, vocab.PredHasClause)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if err := l.load(child, q); err != nil {
			return nil, err
		}
	}
	q.Children = children

	if err := l.checkWhen(id, children); err != nil {
		return nil, err
	}
	return q, nil
}

func (l *loader) loadSet(id nodeid.ID) (SetRef, error) {
	t, err := graph.One(l.g, id, vocab.PredInSet)
	if err != nil {
		return SetRef{}, err
	}
	switch t.Kind {
	case graph.ListTerm:
		return SetRef{Literal: binding.FromTerms(t.Items)}, nil
	case graph.NodeTerm:
		switch {
		case l.g.HasType(t.ID, vocab.TypeConstantSet):
			return SetRef{Literal: binding.FromTerms(graph.Objects(l.g, t.ID, vocab.PredElements))}, nil
		case combinatorics.IsEnumeration(l.g, t.ID):
			se, err := combinatorics.Load(l.ctx, l.g, t.ID)
			if err != nil {
				return SetRef{}, err
			}
			return SetRef{Literal: se.Values()}, nil
		default:
			return SetRef{Variable: t.ID}, nil
		}
	default:
		return SetRef{}, bdderr.Invalid(id, "quantifier %s: '%s' must be a set or a variable, got literal %s",
			graph.Label(l.g, id), graph.Label(l.g, vocab.PredInSet), t)
	}
}

func (l *loader) loadTime(id nodeid.ID) (*TimeConstraint, error) {
	t, ok, err := graph.OptionalOne(l.g, id, vocab.PredHoldsAt)
	if err != nil || !ok {
		return nil, err
	}
	if !t.IsNode() {
		return nil, bdderr.Invalid(id, "clause %s: '%s' must reference a time constraint",
			graph.Label(l.g, id), graph.Label(l.g, vocab.PredHoldsAt))
	}

	tc := &TimeConstraint{ID: t.ID}
	switch {
	case l.g.HasType(t.ID, vocab.TypeBeforeEvent):
		tc.Kind = BeforeEvent
		tc.Before, err = graph.OneNode(l.g, t.ID, vocab.PredRefEvent)
	case l.g.HasType(t.ID, vocab.TypeAfterEvent):
		tc.Kind = AfterEvent
		tc.After, err = graph.OneNode(l.g, t.ID, vocab.PredRefEvent)
	case l.g.HasType(t.ID, vocab.TypeDuring):
		tc.Kind = DuringEvents
		if tc.After, err = graph.OneNode(l.g, t.ID, vocab.PredAfterEvent); err == nil {
			tc.Before, err = graph.OneNode(l.g, t.ID, vocab.PredBeforeEvent)
		}
	default:
		return nil, bdderr.UnhandledType(t.ID, "time constraint", l.g.TypesOf(t.ID))
	}
	if err != nil {
		return nil, err
	}
	return tc, nil
}

// checkWhen enforces that a scope holds at most one ForAll or behaviour
// clause in the When step.
func (l *loader) checkWhen(scope nodeid.ID, ids []nodeid.ID) error {
	var found []nodeid.ID
	for _, id := range ids {
		c := l.tree.Clauses[id]
		if c.ClauseStep() != When {
			continue
		}
		switch v := c.(type) {
		case *BehaviourClause:
			found = append(found, id)
		case *Quantifier:
			if v.Kind == ForAll {
				found = append(found, id)
			}
		}
	}
	if len(found) > 1 {
		return bdderr.Structural(scope, "%s: at most one ForAll or behaviour clause allowed in the When step, found %d (%s, %s)",
			graph.Label(l.g, scope), len(found), graph.Label(l.g, found[0]), graph.Label(l.g, found[1]))
	}
	return nil
}
