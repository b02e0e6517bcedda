package app

import (
	"context"

	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/publish"
	"github.com/specialistvlad/bddgrid/internal/userstory"
)

// Publish prepares every user story and sends them to the configured
// socket.io endpoint.
func (a *App) Publish(ctx context.Context) error {
	if err := a.config.ValidatePublish(); err != nil {
		return err
	}
	ctx = a.Context(ctx)

	_, loader, err := a.loadStories(ctx)
	if err != nil {
		return err
	}
	stories := loader.Stories()
	data := make([]*userstory.UserStoryData, 0, len(stories))
	for _, story := range stories {
		d, err := loader.PrepareUserStoryData(ctx, story)
		if err != nil {
			return err
		}
		data = append(data, d)
	}
	ctxlog.FromContext(ctx).Debug("User stories prepared for publishing.", "count", len(data))

	pc := a.config.Publish
	p := &publish.Publisher{
		URL:                pc.URL,
		Namespace:          pc.Namespace,
		Event:              pc.Event,
		AckEvent:           pc.AckEvent,
		Timeout:            pc.Timeout,
		InsecureSkipVerify: pc.InsecureSkipVerify,
	}
	return p.Publish(ctx, data)
}
