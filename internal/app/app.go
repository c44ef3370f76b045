// Package app wires a complete editor engine instance: logger, registry,
// factory, authoritative store and propagation engine.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/ctxlog"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/engine"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/factory"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/registry"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/render"
	"github.com/Jayrr-Dev/AgenitiX-sub008/internal/store"
	"github.com/Jayrr-Dev/AgenitiX-sub008/modules/canvas"
	"github.com/Jayrr-Dev/AgenitiX-sub008/modules/corenodes"
)

// coreModules are the compiled-in node kind collections registered when the
// caller does not supply its own.
var coreModules = []registry.Module{
	corenodes.Module{},
}

// App encapsulates one editor engine instance and its dependencies.
type App struct {
	outW          io.Writer
	logger        *slog.Logger
	ctx           context.Context
	registry      *registry.Registry
	factory       *factory.Factory
	store         *store.MemStore
	engine        *engine.Engine
	bridge        *canvas.Bridge
	frameInterval time.Duration

	// valueMemo caches derived node values by dependency fingerprint.
	valueMemo map[string]string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry,
// or an error when configuration loading or validation fails.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("logger configured")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("compiled-in node kinds registered", "count", reg.Len())

	if cfg.ManifestPath != "" {
		if err := reg.LoadManifests(ctx, cfg.ManifestPath); err != nil {
			return nil, fmt.Errorf("failed to load node manifests: %w", err)
		}
	}
	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}

	var renderer render.Renderer = render.NewLogRenderer(ctx)
	var bridge *canvas.Bridge
	if cfg.CanvasURL != "" {
		var err error
		bridge, err = canvas.Dial(ctx, canvas.Options{URL: cfg.CanvasURL})
		if err != nil {
			return nil, fmt.Errorf("failed to connect canvas bridge: %w", err)
		}
		renderer = bridge
	}

	memStore := store.NewMemStore()
	eng := engine.New(ctx, memStore, engine.Options{
		FrameInterval: cfg.FrameInterval,
		Renderer:      renderer,
	})

	fac := factory.New(ctx, reg, factory.Options{
		Strategy:         factory.RegistryFirst,
		EnableCaching:    true,
		FallbackBehavior: factory.Warn,
	})

	frameInterval := cfg.FrameInterval
	if frameInterval <= 0 {
		frameInterval = engine.DefaultFrameInterval
	}

	return &App{
		outW:          outW,
		logger:        logger,
		ctx:           ctx,
		registry:      reg,
		factory:       fac,
		store:         memStore,
		engine:        eng,
		bridge:        bridge,
		frameInterval: frameInterval,
		valueMemo:     make(map[string]string),
	}, nil
}

// Registry exposes the app's node kind registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Factory exposes the app's node factory.
func (a *App) Factory() *factory.Factory { return a.factory }

// Engine exposes the app's propagation engine.
func (a *App) Engine() *engine.Engine { return a.engine }

// Store exposes the authoritative activation store.
func (a *App) Store() *store.MemStore { return a.store }

// Close disposes the engine and disconnects the canvas bridge.
func (a *App) Close() {
	a.engine.Dispose()
	if a.bridge != nil {
		a.bridge.Close()
	}
}
