package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/graph"
	"github.com/specialistvlad/bddgrid/internal/hcl_adapter"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"github.com/specialistvlad/bddgrid/internal/userstory"
	"github.com/specialistvlad/bddgrid/internal/vocab"
	"github.com/specialistvlad/bddgrid/internal/yamlgraph"
)

// namespaces returns the built-in prefixes plus those from the config.
func (a *App) namespaces() (*nodeid.Namespaces, error) {
	ns := vocab.Namespaces()
	for prefix, iri := range a.config.Namespaces {
		if err := ns.Bind(prefix, iri); err != nil {
			return nil, fmt.Errorf("config namespace %q: %w", prefix, err)
		}
	}
	return ns, nil
}

// LoadGraph reads every configured graph path, HCL and YAML alike, into one
// store.
func (a *App) LoadGraph(ctx context.Context) (*graph.Store, error) {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading graph...", "paths", a.config.GraphPaths)

	ns, err := a.namespaces()
	if err != nil {
		return nil, err
	}
	loaders := []graph.Loader{hcl_adapter.NewLoader(ns), yamlgraph.NewLoader(ns)}
	g, err := graph.LoadAll(ctx, ns, loaders, a.config.GraphPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}

	logger.Info("Graph loaded successfully.", "triples", g.Len())
	return g, nil
}

// loadStories loads the graph and indexes its user stories.
func (a *App) loadStories(ctx context.Context) (*graph.Store, *userstory.UserStoryLoader, error) {
	g, err := a.LoadGraph(ctx)
	if err != nil {
		return nil, nil, err
	}
	l, err := userstory.New(a.Context(ctx), g, a.registry)
	if err != nil {
		return nil, nil, err
	}
	return g, l, nil
}
