package pickplace

import (
	"fmt"

	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

// Module implements the registry.Module interface for this package. It
// covers the composite pick-and-place behaviour and its two halves.
type Module struct{}

// RenderPickPlace is the renderer for bhv:PickPlace behaviour clauses.
func RenderPickPlace(v registry.Values) string {
	return fmt.Sprintf(`"%s" picks "%s" from "%s" and places it at "%s"`,
		v[vocab.PredTargetAgent], v[vocab.PredTargetObject], v[vocab.PredPickWorkspace], v[vocab.PredPlaceWorkspace])
}

// RenderPick is the renderer for bhv:Pick behaviour clauses.
func RenderPick(v registry.Values) string {
	return fmt.Sprintf(`"%s" picks "%s" from "%s"`,
		v[vocab.PredTargetAgent], v[vocab.PredTargetObject], v[vocab.PredPickWorkspace])
}

// RenderPlace is the renderer for bhv:Place behaviour clauses.
func RenderPlace(v registry.Values) string {
	return fmt.Sprintf(`"%s" places "%s" at "%s"`,
		v[vocab.PredTargetAgent], v[vocab.PredTargetObject], v[vocab.PredPlaceWorkspace])
}

// Register registers the handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBehaviour(vocab.TypePickPlace, &registry.ClauseHandler{
		Name:   "pick-place",
		Load:   registry.RoleLoader(vocab.PredTargetObject, vocab.PredTargetAgent, vocab.PredPickWorkspace, vocab.PredPlaceWorkspace),
		Render: RenderPickPlace,
	})
	r.RegisterBehaviour(vocab.TypePick, &registry.ClauseHandler{
		Name:   "pick",
		Load:   registry.RoleLoader(vocab.PredTargetObject, vocab.PredTargetAgent, vocab.PredPickWorkspace),
		Render: RenderPick,
	})
	r.RegisterBehaviour(vocab.TypePlace, &registry.ClauseHandler{
		Name:   "place",
		Load:   registry.RoleLoader(vocab.PredTargetObject, vocab.PredTargetAgent, vocab.PredPlaceWorkspace),
		Render: RenderPlace,
	})
}
