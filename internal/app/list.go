package app

import (
	"context"
	"fmt"
	"io"
)

// List prints every user story followed by its scenario variants and the
// number of variations each one expands to.
func (a *App) List(ctx context.Context, w io.Writer) error {
	ctx = a.Context(ctx)
	g, loader, err := a.loadStories(ctx)
	if err != nil {
		return err
	}
	ns := g.Namespaces()
	variants := loader.UserStoryVariants()

	for _, story := range loader.Stories() {
		fmt.Fprintln(w, ns.Compact(story))
		for _, id := range variants[story] {
			v, err := loader.LoadScenarioVariant(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s (%d variations)\n", ns.Compact(id), v.Variation.Count)
		}
	}
	return nil
}
