package isnear

import (
	"fmt"

	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Render is the renderer for clauses holding a bdd:IsNearPredicate.
func Render(v registry.Values) string {
	return fmt.Sprintf(`"%s" is near "%s"`, v[vocab.PredRefAgent], v[vocab.PredRefObject])
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFluent(vocab.TypeIsNear, &registry.ClauseHandler{
		Name:   "is-near",
		Load:   registry.RoleLoader(vocab.PredRefAgent, vocab.PredRefObject),
		Render: Render,
	})
}
