package isheld

import (
	"fmt"

	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Render is the renderer for clauses holding a bdd:IsHeldPredicate.
func Render(v registry.Values) string {
	return fmt.Sprintf(`"%s" is held by "%s"`, v[vocab.PredRefObject], v[vocab.PredRefAgent])
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFluent(vocab.TypeIsHeld, &registry.ClauseHandler{
		Name:   "is-held",
		Load:   registry.RoleLoader(vocab.PredRefObject, vocab.PredRefAgent),
		Render: Render,
	})
}
