package variations

import (
	"context"
	"slices"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/binding"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/variation"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ResolveCartesianProduct expands a bdd:CartesianProductVariation: one
// domain per variable, every combination of their values.
func ResolveCartesianProduct(ctx context.Context, g graph.Graph, _ *registry.Registry, id nodeid.ID) (*binding.Table, error) {
	vars, err := variation.Variables(g, id)
	if err != nil {
		return nil, err
	}

	// Each of-sets edge is one domain; a nested list is a literal domain.
	sets := g.ObjectsOf(id, vocab.PredOfSets)
	if len(sets) != len(vars) {
		return nil, bdderr.Constraint(id, len(vars), len(sets),
			"task variation %s: number of sets must match the variable list", graph.Label(g, id))
	}

	domains := make([][]binding.Value, len(sets))
	for i, s := range sets {
		domains[i], err = variation.Domain(ctx, g, id, s)
		if err != nil {
			return nil, err
		}
	}

	return &binding.Table{
		Variables: vars,
		Rows:      variation.Product(domains),
		Count:     variation.ProductCount(domains),
	}, nil
}

// ResolveTable expands a bdd:TableVariation: explicit rows of values.
func ResolveTable(_ context.Context, g graph.Graph, _ *registry.Registry, id nodeid.ID) (*binding.Table, error) {
	vars, err := variation.Variables(g, id)
	if err != nil {
		return nil, err
	}

	var rows [][]binding.Value
	for i, t := range g.ObjectsOf(id, vocab.PredRows) {
		if t.Kind != graph.ListTerm {
			return nil, bdderr.Invalid(id, "task variation %s: row %d must be a list, got %s %s",
				graph.Label(g, id), i, t.Kind, t)
		}
		if len(t.Items) != len(vars) {
			return nil, bdderr.Constraint(id, len(vars), len(t.Items),
				"task variation %s: row %d does not match the variable list", graph.Label(g, id), i)
		}
		rows = append(rows, binding.FromTerms(t.Items))
	}

	return &binding.Table{
		Variables: vars,
		Rows:      slices.Values(rows),
		Count:     len(rows),
	}, nil
}

// Register registers the resolvers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterVariation(vocab.TypeCartesianProduct, ResolveCartesianProduct)
	r.RegisterVariation(vocab.TypeTableVariation, ResolveTable)
}
