package locatedat

import (
	"fmt"

	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Render is the renderer for clauses holding a bdd:LocatedAtPredicate.
func Render(v registry.Values) string {
	return fmt.Sprintf(`"%s" is located at "%s"`, v[vocab.PredRefObject], v[vocab.PredRefWorkspace])
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFluent(vocab.TypeLocatedAt, &registry.ClauseHandler{
		Name:   "located-at",
		Load:   registry.RoleLoader(vocab.PredRefObject, vocab.PredRefWorkspace),
		Render: Render,
	})
}
