// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package combinatorics

import (
	"context"
	"iter"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/binding"
	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

// Kind selects the enumeration strategy.
type Kind int

const (
	Combination Kind = iota
	Permutation
)

func (k Kind) String() string {
	if k == Permutation {
		return "permutation"
	}
	return "combination"
}

// SetEnumeration describes a lazily enumerated family of tuples drawn from a
// base sequence.
type SetEnumeration struct {
	ID                nodeid.ID
	Kind              Kind
	From              []binding.Value
	Length            int
	RepetitionAllowed bool
}

// IsEnumeration reports whether id is typed as a combination or permutation.
func IsEnumeration(g graph.Graph, id nodeid.ID) bool {
	return g.HasType(id, vocab.TypeCombination) || g.HasType(id, vocab.TypePermutation)
}

// Load reads the set enumeration rooted at id.
func Load(ctx context.Context, g graph.Graph, id nodeid.ID) (*SetEnumeration, error) {
	logger := ctxlog.FromContext(ctx)
	label := graph.Label(g, id)

	se := &SetEnumeration{ID: id}
	switch {
	case g.HasType(id, vocab.TypeCombination):
		se.Kind = Combination
	case g.HasType(id, vocab.TypePermutation):
		se.Kind = Permutation
	default:
		return nil, bdderr.UnhandledType(id, "set enumeration", g.TypesOf(id))
	}

	from, err := loadFrom(g, id)
	if err != nil {
		return nil, err
	}
	if len(from) == 0 {
		return nil, bdderr.Invalid(id, "%s: '%s' set is empty", label, graph.Label(g, vocab.PredFrom))
	}
	se.From = from

	length, ok, err := graph.Int(g, id, vocab.PredLength)
	if err != nil {
		return nil, err
	}
	if !ok {
		length = len(from)
	}
	if length <= 0 {
		return nil, bdderr.Invalid(id, "%s: length must be positive, got %d", label, length)
	}
	if length > len(from) {
		return nil, bdderr.Constraint(id, len(from), length,
			"%s: length exceeds the size of the base set", label)
	}
	se.Length = length

	se.RepetitionAllowed, err = graph.Bool(g, id, vocab.PredRepetitionAllowed, false)
	if err != nil {
		return nil, err
	}
	if se.Kind == Permutation && se.RepetitionAllowed {
		logger.Warn("Repetition flag is ignored for permutations.", "node", label)
	}

	logger.Debug("Set enumeration loaded.", "node", label, "kind", se.Kind, "from", len(from), "length", length, "count", se.Count())
	return se, nil
}

func loadFrom(g graph.Graph, id nodeid.ID) ([]binding.Value, error) {
	t, err := graph.One(g, id, vocab.PredFrom)
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case graph.ListTerm:
		return binding.FromTerms(t.Items), nil
	case graph.NodeTerm:
		if !g.HasType(t.ID, vocab.TypeConstantSet) {
			return nil, bdderr.UnhandledType(t.ID, "set", g.TypesOf(t.ID))
		}
		return binding.FromTerms(graph.Objects(g, t.ID, vocab.PredElements)), nil
	default:
		return nil, bdderr.Invalid(id, "%s: '%s' must reference a set, got literal %s",
			graph.Label(g, id), graph.Label(g, vocab.PredFrom), t)
	}
}

// Enumerate yields every tuple of the enumeration. Length-1 enumerations
// yield the bare element. The sequence can be iterated any number of times.
func (s *SetEnumeration) Enumerate() iter.Seq[binding.Value] {
	var tuples iter.Seq[[]binding.Value]
	switch {
	case s.Kind == Permutation:
		tuples = Permutations(s.From, s.Length)
	case s.RepetitionAllowed:
		tuples = CombinationsWithReplacement(s.From, s.Length)
	default:
		tuples = Combinations(s.From, s.Length)
	}
	return func(yield func(binding.Value) bool) {
		for t := range tuples {
			var v binding.Value = binding.Tuple{Items: t}
			if s.Length == 1 {
				v = t[0]
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Values collects Enumerate into a slice.
func (s *SetEnumeration) Values() []binding.Value {
	out := make([]binding.Value, 0, s.Count())
	for v := range s.Enumerate() {
		out = append(out, v)
	}
	return out
}

// Count returns the number of tuples Enumerate yields.
func (s *SetEnumeration) Count() int {
	m, k := len(s.From), s.Length
	switch {
	case s.Kind == Permutation:
		return PermutationCount(m, k)
	case s.RepetitionAllowed:
		return Binomial(m+k-1, k)
	default:
		return Binomial(m, k)
	}
}
