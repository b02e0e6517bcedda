// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package render turns a loaded clause tree and one set of variable bindings
// into the ordered Given/When/Then lines of a scenario.
package render

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/binding"
	"github.com/specialistvlad/bddgrid/internal/clause"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/registry"
)

// Engine renders clause trees. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	ns *nodeid.Namespaces
}

// New creates an engine that prints node ids compacted with ns.
func New(ns *nodeid.Namespaces) *Engine {
	return &Engine{ns: ns}
}

// Render produces the scenario lines for bindings. Each step's first line
// starts with its keyword and the rest with "And".
func (e *Engine) Render(tree *clause.Tree, bindings binding.Map) ([]string, error) {
	var out []string
	for _, step := range clause.AllSteps {
		var texts []string
		for _, c := range tree.Roots(step) {
			lines, err := e.renderClause(tree, c, bindings)
			if err != nil {
				return nil, err
			}
			texts = append(texts, lines...)
		}
		for i, text := range texts {
			keyword := "And"
			if i == 0 {
				keyword = step.Keyword()
			}
			out = append(out, keyword+" "+text)
		}
	}
	return out, nil
}

// Steps renders like Render but keeps the clause texts of each step apart,
// without keywords.
func (e *Engine) Steps(tree *clause.Tree, bindings binding.Map) ([3][]string, error) {
	var out [3][]string
	for _, step := range clause.AllSteps {
		for _, c := range tree.Roots(step) {
			lines, err := e.renderClause(tree, c, bindings)
			if err != nil {
				return out, err
			}
			out[step] = append(out[step], lines...)
		}
	}
	return out, nil
}

func (e *Engine) renderClause(tree *clause.Tree, c clause.Clause, b binding.Map) ([]string, error) {
	switch v := c.(type) {
	case *clause.FluentClause:
		values, err := e.values(v.ID, v.Args, b)
		if err != nil {
			return nil, err
		}
		return []string{v.Handler.Render(values) + e.timeSuffix(v.Time)}, nil

	case *clause.BehaviourClause:
		values, err := e.values(v.ID, v.Args, b)
		if err != nil {
			return nil, err
		}
		return []string{v.Handler.Render(values)}, nil

	case *clause.Quantifier:
		items, err := resolveSet(v, b)
		if err != nil {
			return nil, err
		}
		if v.Kind == clause.ThereExists {
			return e.renderChildren(tree, v, b.With(v.Variable, binding.Exists{Items: items}))
		}
		var out []string
		for _, item := range items {
			lines, err := e.renderChildren(tree, v, b.With(v.Variable, item))
			if err != nil {
				return nil, err
			}
			out = append(out, lines...)
		}
		return out, nil

	default:
		return nil, bdderr.Internal(c.ClauseID(), "no renderer for clause %s of type %T", c.ClauseID(), c)
	}
}

func (e *Engine) renderChildren(tree *clause.Tree, q *clause.Quantifier, b binding.Map) ([]string, error) {
	var out []string
	for _, child := range tree.Children(q) {
		lines, err := e.renderClause(tree, child, b)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}

func (e *Engine) values(id nodeid.ID, args []registry.Arg, b binding.Map) (registry.Values, error) {
	values := make(registry.Values, len(args))
	for _, a := range args {
		v, ok := b.Get(a.Variable)
		if !ok {
			return nil, bdderr.Unbound(id, a.Variable)
		}
		values[a.Role] = v.Render(e.ns)
	}
	return values, nil
}

func resolveSet(q *clause.Quantifier, b binding.Map) ([]binding.Value, error) {
	if !q.InSet.IsVariable() {
		return q.InSet.Literal, nil
	}
	v, ok := b.Get(q.InSet.Variable)
	if !ok {
		return nil, bdderr.Unbound(q.ID, q.InSet.Variable)
	}
	items, ok := binding.Items(v)
	if !ok {
		return nil, bdderr.NotIterable(q.ID, q.InSet.Variable)
	}
	return items, nil
}

func (e *Engine) timeSuffix(tc *clause.TimeConstraint) string {
	if tc == nil {
		return ""
	}
	var sb strings.Builder
	switch tc.Kind {
	case clause.BeforeEvent:
		fmt.Fprintf(&sb, " before event %q", e.ns.Compact(tc.Before))
	case clause.AfterEvent:
		fmt.Fprintf(&sb, " after event %q", e.ns.Compact(tc.After))
	case clause.DuringEvents:
		fmt.Fprintf(&sb, " after event %q and before event %q", e.ns.Compact(tc.After), e.ns.Compact(tc.Before))
	}
	return sb.String()
}
