package userstory

import (
	"context"
	"fmt"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// PrepareVariantData loads the variant and renders one Variation per row of
// its task variation, in row order. The result depends only on the graph, so
// repeated calls produce identical data.
func (l *UserStoryLoader) PrepareVariantData(ctx context.Context, id nodeid.ID) (*VariantData, error) {
	v, err := l.LoadScenarioVariant(ctx, id)
	if err != nil {
		return nil, err
	}
	ns := l.g.Namespaces()

	data := &VariantData{
		Name:       ns.Compact(v.ID),
		Scenario:   ns.Compact(v.Scenario.ID),
		Template:   ns.Compact(v.Template),
		Variables:  make([]string, len(v.Variation.Variables)),
		Variations: make([]Variation, 0, v.Variation.Count),
	}
	if !v.Scenario.Behaviour.IsZero() {
		data.Behaviour = ns.Compact(v.Scenario.Behaviour)
	}
	if !v.Scenario.Task.IsZero() {
		data.Task = ns.Compact(v.Scenario.Task)
	}
	for i, variable := range v.Variation.Variables {
		data.Variables[i] = ns.Compact(variable)
	}

	n := 0
	for b := range v.Variation.Maps() {
		n++
		lines, err := l.engine.Render(v.Tree, b)
		if err != nil {
			return nil, fmt.Errorf("rendering variation %d of %s: %w", n, data.Name, err)
		}
		bindings := make([]Binding, 0, b.Len())
		for _, key := range b.Keys() {
			val, _ := b.Get(key)
			bindings = append(bindings, Binding{Variable: ns.Compact(key), Value: val.Render(ns)})
		}
		data.Variations = append(data.Variations, Variation{
			Name:     fmt.Sprintf("%s #%d", data.Name, n),
			Bindings: bindings,
			Clauses:  lines,
		})
	}

	ctxlog.FromContext(ctx).Debug("Variant data prepared.", "variant", data.Name, "variations", n)
	return data, nil
}

// PrepareUserStoryData prepares every criterion of story. All its variants
// must share one scene.
func (l *UserStoryLoader) PrepareUserStoryData(ctx context.Context, story nodeid.ID) (*UserStoryData, error) {
	ids, ok := l.variants[story]
	if !ok {
		return nil, bdderr.Invalid(story, "%s is not a known user story", graph.Label(l.g, story))
	}
	ns := l.g.Namespaces()

	data := &UserStoryData{Name: ns.Compact(story), Criteria: make([]*VariantData, 0, len(ids))}
	var scene *Scene
	for _, id := range ids {
		v, err := l.LoadScenarioVariant(ctx, id)
		if err != nil {
			return nil, err
		}
		if scene == nil {
			scene = v.Scene
		} else if scene.ID != v.Scene.ID {
			return nil, bdderr.Constraint(story, 1, 2,
				"user story %s uses more than one scene: %s, %s",
				data.Name, ns.Compact(scene.ID), ns.Compact(v.Scene.ID))
		}

		vd, err := l.PrepareVariantData(ctx, id)
		if err != nil {
			return nil, err
		}
		data.Criteria = append(data.Criteria, vd)
	}

	if scene != nil {
		data.Scene = SceneData{
			Name:       ns.Compact(scene.ID),
			Objects:    entityNames(ns, scene.Objects),
			Workspaces: entityNames(ns, scene.Workspaces),
			Agents:     entityNames(ns, scene.Agents),
		}
	}
	return data, nil
}
