// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/feature"
	"github.com/specialistvlad/bddgrid/internal/nodeid"
	"golang.org/x/sync/errgroup"
)

// Generate writes one feature file per user story into the output directory
// and returns the written paths, sorted. Stories are prepared and rendered
// concurrently, at most Workers at a time.
func (a *App) Generate(ctx context.Context) ([]string, error) {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)

	g, loader, err := a.loadStories(ctx)
	if err != nil {
		return nil, err
	}
	stories := loader.Stories()

	// Two stories must not land in the same file.
	ns := g.Namespaces()
	names := make([]string, len(stories))
	seen := make(map[string]nodeid.ID, len(stories))
	for i, story := range stories {
		name, err := feature.Filename(ns.Compact(story))
		if err != nil {
			return nil, fmt.Errorf("user story %s: %w", story, err)
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("user stories %s and %s both map to feature file %s", prev, story, name)
		}
		seen[name] = story
		names[i] = name
	}

	if err := os.MkdirAll(a.config.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, len(stories))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.config.Workers)
	for i, story := range stories {
		eg.Go(func() error {
			data, err := loader.PrepareUserStoryData(egCtx, story)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := a.features.Render(&buf, data); err != nil {
				return err
			}
			path := filepath.Join(a.config.OutputDir, names[i])
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing feature file: %w", err)
			}
			logger.Debug("Feature file written.", "story", data.Name, "path", path)
			paths[i] = path
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(paths)
	logger.Info("Feature files generated.", "count", len(paths), "output", a.config.OutputDir)
	return paths, nil
}
