package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/bddgrid/internal/bdderr"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered handlers for a single application
// instance. Lookups follow registration order, so a node carrying several
// handled tags always resolves to the same handler.
type Registry struct {
	fluents        map[nodeid.ID]*ClauseHandler
	fluentOrder    []nodeid.ID
	behaviours     map[nodeid.ID]*ClauseHandler
	behaviourOrder []nodeid.ID
	variations     map[nodeid.ID]VariationResolver
	variationOrder []nodeid.ID
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		fluents:    make(map[nodeid.ID]*ClauseHandler),
		behaviours: make(map[nodeid.ID]*ClauseHandler),
		variations: make(map[nodeid.ID]VariationResolver),
	}
}

// RegisterFluent registers the handler for clauses holding a fluent typed t.
func (r *Registry) RegisterFluent(t nodeid.ID, h *ClauseHandler) {
	if _, exists := r.fluents[t]; exists {
		panic(fmt.Sprintf("fluent handler for type '%s' already registered", t))
	}
	slog.Debug("Registering fluent handler.", "type", t, "name", h.Name)
	r.fluents[t] = h
	r.fluentOrder = append(r.fluentOrder, t)
}

// RegisterBehaviour registers the handler for behaviour clauses whose
// behaviour is typed t.
func (r *Registry) RegisterBehaviour(t nodeid.ID, h *ClauseHandler) {
	if _, exists := r.behaviours[t]; exists {
		panic(fmt.Sprintf("behaviour handler for type '%s' already registered", t))
	}
	slog.Debug("Registering behaviour handler.", "type", t, "name", h.Name)
	r.behaviours[t] = h
	r.behaviourOrder = append(r.behaviourOrder, t)
}

// RegisterVariation registers the resolver for task variations typed t.
func (r *Registry) RegisterVariation(t nodeid.ID, fn VariationResolver) {
	if _, exists := r.variations[t]; exists {
		panic(fmt.Sprintf("variation resolver for type '%s' already registered", t))
	}
	slog.Debug("Registering variation resolver.", "type", t)
	r.variations[t] = fn
	r.variationOrder = append(r.variationOrder, t)
}

// Fluent returns the handler for a fluent node carrying types.
func (r *Registry) Fluent(node nodeid.ID, types []nodeid.ID) (*ClauseHandler, error) {
	t, ok := firstMatch(r.fluentOrder, types)
	if !ok {
		return nil, bdderr.UnhandledType(node, "fluent", types)
	}
	return r.fluents[t], nil
}

// Behaviour returns the handler for a behaviour node carrying types.
func (r *Registry) Behaviour(node nodeid.ID, types []nodeid.ID) (*ClauseHandler, error) {
	t, ok := firstMatch(r.behaviourOrder, types)
	if !ok {
		return nil, bdderr.UnhandledType(node, "behaviour", types)
	}
	return r.behaviours[t], nil
}

// Variation returns the resolver for a task variation node carrying types.
func (r *Registry) Variation(node nodeid.ID, types []nodeid.ID) (VariationResolver, error) {
	t, ok := firstMatch(r.variationOrder, types)
	if !ok {
		return nil, bdderr.UnhandledType(node, "task variation", types)
	}
	return r.variations[t], nil
}

// FluentTypes returns the registered fluent tags in registration order.
func (r *Registry) FluentTypes() []nodeid.ID { return slices.Clone(r.fluentOrder) }

// BehaviourTypes returns the registered behaviour tags in registration order.
func (r *Registry) BehaviourTypes() []nodeid.ID { return slices.Clone(r.behaviourOrder) }

// VariationTypes returns the registered variation tags in registration order.
func (r *Registry) VariationTypes() []nodeid.ID { return slices.Clone(r.variationOrder) }

func firstMatch(order, types []nodeid.ID) (nodeid.ID, bool) {
	for _, t := range order {
		if slices.Contains(types, t) {
			return t, true
		}
	}
	return "", false
}
