package registry

import (
	"context"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/binding"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Arg ties a role predicate of a clause (e.g. bdd:ref-object) to the
// scenario variable it references.
type Arg struct {
	Role     nodeid.ID
	Variable nodeid.ID
}

// Values maps each role predicate to the rendered value of its variable.
type Values map[nodeid.ID]string

// ClauseHandler loads and renders one kind of fluent or behaviour clause.
type ClauseHandler struct {
	Name string
	// Load reads the role arguments from the clause node.
	Load func(g graph.Graph, clause nodeid.ID) ([]Arg, error)
	// Render produces the clause text from the rendered role values.
	Render func(v Values) string
}

// VariationResolver expands a task variation node into its value table.
type VariationResolver func(ctx context.Context, g graph.Graph, r *Registry, id nodeid.ID) (*binding.Table, error)

// RoleLoader returns a Load function requiring exactly one variable per role,
// returned in the given role order.
func RoleLoader(roles ...nodeid.ID) func(g graph.Graph, clause nodeid.ID) ([]Arg, error) {
	return func(g graph.Graph, clause nodeid.ID) ([]Arg, error) {
		args := make([]Arg, 0, len(roles))
		for _, role := range roles {
			objs := g.ObjectsOf(clause, role)
			if len(objs) != 1 {
				return nil, bdderr.Constraint(clause, 1, len(objs),
					"clause %s: role '%s' must reference exactly one variable",
					graph.Label(g, clause), graph.Label(g, role))
			}
			if !objs[0].IsNode() {
				return nil, bdderr.Invalid(clause, "clause %s: role '%s' must reference a variable, got %s",
					graph.Label(g, clause), graph.Label(g, role), objs[0])
			}
			args = append(args, Arg{Role: role, Variable: objs[0].ID})
		}
		return args, nil
	}
}
