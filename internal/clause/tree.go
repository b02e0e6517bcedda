// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package clause

import (
	"slices"

	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Tree is the loaded clause forest of one scenario variant.
type Tree struct {
	// Clauses indexes every loaded clause, nested ones included.
	Clauses map[nodeid.ID]Clause
	// ByStep lists the top-level clause ids per step, in edge order with the
	// template's clauses before the variant's.
	ByStep [3][]nodeid.ID
	// Variables lists every referenced variable in first-reference order.
	Variables []nodeid.ID
	// Quantified lists the variables bound by quantifiers.
	Quantified []nodeid.ID
}

func newTree() *Tree {
	return &Tree{Clauses: make(map[nodeid.ID]Clause)}
}

// Roots returns the top-level clauses of step.
func (t *Tree) Roots(step Step) []Clause {
	out := make([]Clause, 0, len(t.ByStep[step]))
	for _, id := range t.ByStep[step] {
		out = append(out, t.Clauses[id])
	}
	return out
}

// Children returns the loaded children of a quantifier.
func (t *Tree) Children(q *Quantifier) []Clause {
	out := make([]Clause, 0, len(q.Children))
	for _, id := range q.Children {
		out = append(out, t.Clauses[id])
	}
	return out
}

// FreeVariables returns the referenced variables no quantifier binds. These
// must come from the task variation.
func (t *Tree) FreeVariables() []nodeid.ID {
	var out []nodeid.ID
	for _, v := range t.Variables {
		if !slices.Contains(t.Quantified, v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *Tree) addRef(v nodeid.ID) {
	if !slices.Contains(t.Variables, v) {
		t.Variables = append(t.Variables, v)
	}
}

func (t *Tree) addQuantified(v nodeid.ID) {
	if !slices.Contains(t.Quantified, v) {
		t.Quantified = append(t.Quantified, v)
	}
}
