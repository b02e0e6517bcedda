package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/bddgrid/internal/ctxlog"
)

// ValidateRegistry checks that every registered handler is complete.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	check := func(kind string, order []string, handlers []*ClauseHandler) {
		for i, h := range handlers {
			if h == nil {
				errs = append(errs, fmt.Sprintf("%s '%s': handler is nil", kind, order[i]))
				continue
			}
			if h.Load == nil {
				errs = append(errs, fmt.Sprintf("%s '%s': handler has no loader", kind, order[i]))
			}
			if h.Render == nil {
				errs = append(errs, fmt.Sprintf("%s '%s': handler has no renderer", kind, order[i]))
			}
		}
	}

	var fluentNames, behaviourNames []string
	var fluentHandlers, behaviourHandlers []*ClauseHandler
	for _, t := range r.fluentOrder {
		fluentNames = append(fluentNames, t.String())
		fluentHandlers = append(fluentHandlers, r.fluents[t])
	}
	for _, t := range r.behaviourOrder {
		behaviourNames = append(behaviourNames, t.String())
		behaviourHandlers = append(behaviourHandlers, r.behaviours[t])
	}
	check("fluent", fluentNames, fluentHandlers)
	check("behaviour", behaviourNames, behaviourHandlers)

	for _, t := range r.variationOrder {
		if r.variations[t] == nil {
			errs = append(errs, fmt.Sprintf("variation '%s': resolver is nil", t))
		}
	}

	if len(r.variationOrder) == 0 {
		logger.Warn("No task variation resolvers registered; every scenario variant will fail to resolve.")
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validated.", "fluents", len(r.fluentOrder), "behaviours", len(r.behaviourOrder), "variations", len(r.variationOrder))
	return nil
}
