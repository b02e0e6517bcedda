package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/feature"
	"github.com/specialistvlad/bddgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	features *feature.Renderer

	httpServer *http.Server

	mu      sync.Mutex
	lastErr error // result of the latest generation, reported by /health
}

// NewApp builds an App whose logs go to logW. With no modules given the
// built-in clause and variation handlers are registered.
func NewApp(logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	renderer := feature.Default()
	if cfg.TemplatePath != "" {
		var err error
		if renderer, err = feature.FromFile(cfg.TemplatePath); err != nil {
			return nil, err
		}
		logger.Debug("Custom feature template loaded.", "path", cfg.TemplatePath)
	}

	return &App{
		logger:   logger,
		registry: reg,
		config:   cfg,
		features: renderer,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

func (a *App) setLastErr(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = err
}

func (a *App) healthy() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastErr != nil {
		return fmt.Errorf("last generation failed: %w", a.lastErr)
	}
	return nil
}
