// Package app implements the application layer for forge.
package app

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/compile"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	log    ports.Logger
	engine *compile.Context
	store  ports.TargetDataStore
	tracer ports.Tracer
}

// New creates a new App instance.
func New(log ports.Logger, engine *compile.Context, store ports.TargetDataStore, tracer ports.Tracer) *App {
	return &App{
		log:    log,
		engine: engine,
		store:  store,
		tracer: tracer,
	}
}

// PlanOptions configures a Plan run.
type PlanOptions struct {
	// Commit persists the expected cache attributes for every chunk the way a
	// successful build driver would, instead of leaving the decision dry.
	Commit bool
}

// Plan loads the module graph, reconciles every cache against the current
// compiler build and returns the resulting rebuild plan. Invalidation
// decisions are executed, not just reported: stale caches are cleaned and
// their targets dirty-marked before Plan returns.
func (a *App) Plan(ctx context.Context, opts PlanOptions) (*domain.RebuildPlan, error) {
	if err := a.engine.LoadTargets(ctx); err != nil {
		return nil, zerr.Wrap(err, "failed to load targets")
	}

	plan, err := a.engine.CheckCacheVersions(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to check cache versions")
	}

	cleared, err := a.engine.CleanupCaches()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to clean up stale caches")
	}
	plan.ClearedCaches = cleared

	if !opts.Commit {
		return plan, nil
	}

	for _, chunk := range a.engine.Chunks() {
		if err := a.engine.MarkBuilt(chunk); err != nil {
			return nil, zerr.Wrap(err, "failed to persist chunk attributes")
		}
	}
	if err := a.engine.NotifyBuildFinished(); err != nil {
		return nil, err
	}
	if err := a.engine.Dispose(); err != nil {
		return nil, zerr.Wrap(err, "failed to persist global attributes")
	}

	return plan, nil
}

// Clean removes the global lookup cache and every local cache. It runs
// through the same diff computation as a build so every deletion is logged
// with the state that justified it.
func (a *App) Clean(ctx context.Context) error {
	if err := a.engine.LoadTargets(ctx); err != nil {
		return zerr.Wrap(err, "failed to load targets")
	}

	global := a.engine.GlobalDiff()
	a.log.Info("removing global lookup cache: " + global.String())
	if err := global.Clean(); err != nil {
		return err
	}

	for _, chunk := range a.engine.Chunks() {
		for _, t := range chunk.Targets() {
			a.log.Info("removing cache for " + t.ID.String() + ": " + t.Diff().String())
		}
		if err := chunk.CleanCaches(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the application's external resources.
func (a *App) Close() error {
	if err := a.store.Close(); err != nil {
		_ = a.tracer.Close()
		return zerr.Wrap(err, "failed to close target data store")
	}
	return a.tracer.Close()
}
