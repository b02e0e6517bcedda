// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package userstory assembles scenario variants from a loaded graph: it
// resolves the template chain, loads the clause tree and the task variation,
// checks that the two agree on variables, and renders every variation into
// display-ready data.
package userstory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/clause"
	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/internal/render"
	"github.com/specialistvlad/bddgrid/internal/variation"
	"github.com/specialistvlad/bddgrid/internal/vocab"
)

// UserStoryLoader loads and caches the scenario variants of every user story
// in a graph. It is safe for concurrent use.
type UserStoryLoader struct {
	g      graph.Graph
	reg    *registry.Registry
	engine *render.Engine

	stories  []nodeid.ID
	variants map[nodeid.ID][]nodeid.ID

	mu    sync.RWMutex
	cache map[nodeid.ID]*ScenarioVariant
}

// New indexes the user stories of g. A graph without any bdd:UserStory is
// rejected.
func New(ctx context.Context, g graph.Graph, reg *registry.Registry) (*UserStoryLoader, error) {
	l := &UserStoryLoader{
		g:        g,
		reg:      reg,
		engine:   render.New(g.Namespaces()),
		variants: make(map[nodeid.ID][]nodeid.ID),
		cache:    make(map[nodeid.ID]*ScenarioVariant),
	}

	for _, story := range g.NodesOfType(vocab.TypeUserStory) {
		ids, err := graph.Nodes(g, story, vocab.PredHasCriteria)
		if err != nil {
			return nil, err
		}
		for i, id := range ids {
			if slices.Contains(ids[:i], id) {
				return nil, bdderr.Structural(story, "user story %s lists scenario variant %s more than once",
					graph.Label(g, story), graph.Label(g, id))
			}
		}
		l.stories = append(l.stories, story)
		l.variants[story] = ids
	}
	if len(l.stories) == 0 {
		return nil, bdderr.Invalid("", "graph contains no %s", graph.Label(g, vocab.TypeUserStory))
	}

	ctxlog.FromContext(ctx).Debug("User stories indexed.", "stories", len(l.stories))
	return l, nil
}

// Stories returns the user story ids in graph order.
func (l *UserStoryLoader) Stories() []nodeid.ID {
	return slices.Clone(l.stories)
}

// UserStoryVariants maps every user story to its scenario variant ids.
func (l *UserStoryLoader) UserStoryVariants() map[nodeid.ID][]nodeid.ID {
	out := make(map[nodeid.ID][]nodeid.ID, len(l.variants))
	for story, ids := range l.variants {
		out[story] = slices.Clone(ids)
	}
	return out
}

// LoadScenarioVariant loads the variant id, or returns the cached result of
// an earlier load.
func (l *UserStoryLoader) LoadScenarioVariant(ctx context.Context, id nodeid.ID) (*ScenarioVariant, error) {
	l.mu.RLock()
	v, ok := l.cache[id]
	l.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := l.loadVariant(ctx, id)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.cache[id]; ok {
		return cached, nil
	}
	l.cache[id] = v
	return v, nil
}

func (l *UserStoryLoader) loadVariant(ctx context.Context, id nodeid.ID) (*ScenarioVariant, error) {
	g := l.g
	logger := ctxlog.FromContext(ctx)

	if !g.HasType(id, vocab.TypeScenarioVariant) {
		return nil, bdderr.UnhandledType(id, "scenario variant", g.TypesOf(id))
	}

	tmpl, err := graph.OneNode(g, id, vocab.PredOfTemplate)
	if err != nil {
		return nil, err
	}
	scenario, err := l.loadScenario(id, tmpl)
	if err != nil {
		return nil, err
	}

	stories := g.SubjectsOf(vocab.PredHasCriteria, id)
	if len(stories) != 1 {
		return nil, bdderr.Constraint(id, 1, len(stories),
			"scenario variant %s must be referenced by exactly one user story", graph.Label(g, id))
	}

	sceneID, err := graph.OneNode(g, id, vocab.PredHasScene)
	if err != nil {
		return nil, err
	}
	scene, err := loadScene(g, sceneID)
	if err != nil {
		return nil, err
	}

	tree, err := clause.Load(ctx, g, l.reg, scenario.Steps(), tmpl, id)
	if err != nil {
		return nil, err
	}
	scenario.Behaviour = behaviourOf(tree)

	varID, err := graph.OneNode(g, id, vocab.PredHasVariation)
	if err != nil {
		return nil, err
	}
	table, err := variation.Resolve(ctx, g, l.reg, varID)
	if err != nil {
		return nil, err
	}
	if scenario.Task.IsZero() {
		scenario.Task = table.Task
	}

	var missing []string
	for _, v := range tree.FreeVariables() {
		if !slices.Contains(table.Variables, v) {
			missing = append(missing, graph.Label(g, v))
		}
	}
	if len(missing) > 0 {
		return nil, bdderr.Invalid(id,
			"scenario variant %s: variables [%s] are not provided by task variation %s",
			graph.Label(g, id), strings.Join(missing, ", "), graph.Label(g, varID))
	}
	for _, v := range table.Variables {
		if !slices.Contains(tree.Variables, v) {
			logger.Warn("Task variation variable is not referenced by any clause.",
				"variant", graph.Label(g, id), "variable", graph.Label(g, v))
		}
	}

	logger.Debug("Scenario variant loaded.",
		"variant", graph.Label(g, id), "clauses", len(tree.Clauses), "variations", table.Count)

	return &ScenarioVariant{
		ID:        id,
		Story:     stories[0],
		Template:  tmpl,
		Scenario:  scenario,
		Scene:     scene,
		Variation: table,
		Tree:      tree,
	}, nil
}

// loadScenario follows the template to its scenario. A variant may name the
// scenario directly too, in which case both must agree.
func (l *UserStoryLoader) loadScenario(variant, tmpl nodeid.ID) (Scenario, error) {
	g := l.g
	id, err := graph.OneNode(g, tmpl, vocab.PredOfScenario)
	if err != nil {
		return Scenario{}, err
	}
	if direct, ok, err := graph.OptionalOne(g, variant, vocab.PredOfScenario); err != nil {
		return Scenario{}, err
	} else if ok && direct.ID != id {
		return Scenario{}, bdderr.Structural(variant, "scenario variant %s names scenario %s but its template %s belongs to %s",
			graph.Label(g, variant), direct, graph.Label(g, tmpl), graph.Label(g, id))
	}

	s := Scenario{ID: id}
	for _, step := range []struct {
		pred nodeid.ID
		dst  *nodeid.ID
	}{
		{vocab.PredGiven, &s.Given},
		{vocab.PredWhen, &s.When},
		{vocab.PredThen, &s.Then},
	} {
		if *step.dst, err = graph.OneNode(g, id, step.pred); err != nil {
			return Scenario{}, err
		}
	}

	task, ok, err := graph.OptionalOne(g, id, vocab.PredOfTask)
	if err != nil {
		return Scenario{}, err
	}
	if ok && task.IsNode() {
		s.Task = task.ID
	}
	return s, nil
}

// behaviourOf finds the behaviour invoked in the When step, looking inside
// quantifiers as well.
func behaviourOf(tree *clause.Tree) nodeid.ID {
	var walk func([]clause.Clause) nodeid.ID
	walk = func(cs []clause.Clause) nodeid.ID {
		for _, c := range cs {
			switch v := c.(type) {
			case *clause.BehaviourClause:
				return v.Behaviour
			case *clause.Quantifier:
				if b := walk(tree.Children(v)); !b.IsZero() {
					return b
				}
			}
		}
		return ""
	}
	return walk(tree.Roots(clause.When))
}
