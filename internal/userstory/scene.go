package userstory

import (
	"slices"

	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

// loadScene reads the composition nodes of a scene. A composition may carry
// several composition types at once.
func loadScene(g graph.Graph, id nodeid.ID) (*Scene, error) {
	comps, err := graph.Nodes(g, id, vocab.PredHasScene)
	if err != nil {
		return nil, err
	}

	scene := &Scene{ID: id}
	for _, comp := range comps {
		if g.HasType(comp, vocab.TypeSceneHasObjects) {
			if scene.Objects, err = members(g, comp, vocab.PredHasObject, scene.Objects); err != nil {
				return nil, err
			}
		}
		if g.HasType(comp, vocab.TypeSceneHasWorkspaces) {
			if scene.Workspaces, err = members(g, comp, vocab.PredHasWorkspace, scene.Workspaces); err != nil {
				return nil, err
			}
		}
		if g.HasType(comp, vocab.TypeSceneHasAgents) {
			if scene.Agents, err = members(g, comp, vocab.PredHasAgent, scene.Agents); err != nil {
				return nil, err
			}
		}
	}
	return scene, nil
}

func members(g graph.Graph, comp, pred nodeid.ID, into []Entity) ([]Entity, error) {
	ids, err := graph.Nodes(g, comp, pred)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if slices.ContainsFunc(into, func(e Entity) bool { return e.ID == id }) {
			continue
		}
		into = append(into, Entity{ID: id, Types: g.TypesOf(id)})
	}
	return into, nil
}

func entityNames(ns *nodeid.Namespaces, entities []Entity) []string {
	if len(entities) == 0 {
		return nil
	}
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = ns.Compact(e.ID)
	}
	return out
}
