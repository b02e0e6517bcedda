// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package variation resolves task variations into value tables: the ordered
// variable list of a variation and every combination of values those
// variables take across the variants of a scenario.
package variation

import (
	"context"
	"iter"
	"slices"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/binding"
	"github.com/specialistvlad/bddgrid/internal/combinatorics"
	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

// Resolve dispatches the task variation id to the resolver registered for
// its type tags.
func Resolve(ctx context.Context, g graph.Graph, reg *registry.Registry, id nodeid.ID) (*binding.Table, error) {
	resolve, err := reg.Variation(id, g.TypesOf(id))
	if err != nil {
		return nil, err
	}
	table, err := resolve(ctx, g, reg, id)
	if err != nil {
		return nil, err
	}
	table.ID = id

	task, ok, err := graph.OptionalOne(g, id, vocab.PredOfTask)
	if err != nil {
		return nil, err
	}
	if ok && task.IsNode() {
		table.Task = task.ID
	}

	ctxlog.FromContext(ctx).Debug("Task variation resolved.",
		"variation", graph.Label(g, id), "variables", len(table.Variables), "rows", table.Count)
	return table, nil
}

// Variables reads the ordered variable list of a variation.
func Variables(g graph.Graph, id nodeid.ID) ([]nodeid.ID, error) {
	vars, err := graph.Nodes(g, id, vocab.PredVariableList)
	if err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		return nil, bdderr.Invalid(id, "task variation %s declares no variables", graph.Label(g, id))
	}
	for i, v := range vars {
		if slices.Contains(vars[:i], v) {
			return nil, bdderr.Structural(id, "task variation %s lists variable %s more than once",
				graph.Label(g, id), graph.Label(g, v))
		}
	}
	return vars, nil
}

// Domain resolves one element of a product's set list: a literal list, a
// constant set or a set enumeration.
func Domain(ctx context.Context, g graph.Graph, owner nodeid.ID, t graph.Term) ([]binding.Value, error) {
	switch t.Kind {
	case graph.ListTerm:
		return binding.FromTerms(t.Items), nil
	case graph.NodeTerm:
		switch {
		case combinatorics.IsEnumeration(g, t.ID):
			se, err := combinatorics.Load(ctx, g, t.ID)
			if err != nil {
				return nil, err
			}
			return se.Values(), nil
		case g.HasType(t.ID, vocab.TypeConstantSet):
			return binding.FromTerms(graph.Objects(g, t.ID, vocab.PredElements)), nil
		default:
			return nil, bdderr.UnhandledType(t.ID, "set", g.TypesOf(t.ID))
		}
	default:
		return nil, bdderr.Invalid(owner, "task variation %s: set must be a list or a set node, got literal %s",
			graph.Label(g, owner), t)
	}
}

// Product yields the Cartesian product of domains with the leftmost domain
// varying slowest. The sequence is restartable.
func Product(domains [][]binding.Value) iter.Seq[[]binding.Value] {
	return func(yield func([]binding.Value) bool) {
		for _, d := range domains {
			if len(d) == 0 {
				return
			}
		}
		idx := make([]int, len(domains))
		for {
			row := make([]binding.Value, len(domains))
			for i, d := range domains {
				row[i] = d[idx[i]]
			}
			if !yield(row) {
				return
			}
			i := len(domains) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(domains[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// ProductCount returns the number of rows Product yields.
func ProductCount(domains [][]binding.Value) int {
	n := 1
	for _, d := range domains {
		n *= len(d)
	}
	return n
}
