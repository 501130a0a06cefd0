package compile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/cache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// lifecycleState tracks the one-directional per-build protocol. A new build
// creates a new Context; states never move backwards.
type lifecycleState int

const (
	stateUnloaded lifecycleState = iota
	stateTargetsLoaded
	stateVersionsChecked
	stateBuildRun
	stateDisposed
)

func (s lifecycleState) String() string {
	switch s {
	case stateUnloaded:
		return "unloaded"
	case stateTargetsLoaded:
		return "targets-loaded"
	case stateVersionsChecked:
		return "versions-checked"
	case stateBuildRun:
		return "build-run"
	case stateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Context owns the global cache diff and the full chunk list for one build
// and drives the two-phase protocol: compute-diffs-then-decide before the
// build, persist-diffs after it.
type Context struct {
	logger ports.Logger
	source ports.TargetGraphSource
	marker ports.DirtyMarker
	store  ports.TargetDataStore
	tracer ports.Tracer

	mu    sync.Mutex
	state lifecycleState

	// Populated by LoadTargets.
	chunks  []*Chunk
	byID    sync.Map // domain.TargetID -> *Target, populated at most once per key
	global  cache.CompositeDiff
	enabled ports.FeatureSet

	// Scheduling round handed to the dirty-marking primitive.
	round int
}

// NewContext creates the orchestrator for one build.
func NewContext(
	logger ports.Logger,
	source ports.TargetGraphSource,
	marker ports.DirtyMarker,
	store ports.TargetDataStore,
	tracer ports.Tracer,
) *Context {
	return &Context{
		logger: logger,
		source: source,
		marker: marker,
		store:  store,
		tracer: tracer,
		round:  1,
	}
}

// lifecycleErr reports an out-of-order call, chained to domain.ErrLifecycle.
func lifecycleErr(state, wanted lifecycleState) error {
	err := zerr.Wrap(domain.ErrLifecycle, "operation out of order")
	return zerr.With(zerr.With(err, "state", state.String()), "wanted", wanted.String())
}

// advance moves the lifecycle forward, failing loudly on out-of-order calls.
func (c *Context) advance(from, to lifecycleState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != from {
		return lifecycleErr(c.state, from)
	}
	c.state = to
	return nil
}

func (c *Context) require(min lifecycleState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateUnloaded {
		return domain.ErrTargetsNotLoaded
	}
	if c.state < min || c.state == stateDisposed {
		return lifecycleErr(c.state, min)
	}
	return nil
}

// LoadTargets discovers the chunked module graph, binds every target to its
// cache state and constructs the global composite diff from the union of the
// member lookup components. Binding is compute-once per target even when
// discovery runs from concurrent build-graph walkers.
func (c *Context) LoadTargets(ctx context.Context) error {
	_, span := c.tracer.Start(ctx, "load-targets")
	err := c.loadTargets()
	span.End(err)
	return err
}

func (c *Context) loadTargets() error {
	rawChunks, err := c.source.LoadChunks()
	if err != nil {
		return zerr.Wrap(err, "failed to load module graph")
	}

	c.enabled = c.source.Features()
	meta := c.source.Metadata()

	componentSet := make(map[string]struct{})
	chunks := make([]*Chunk, 0, len(rawChunks))

	for _, raw := range rawChunks {
		targets := make([]*Target, 0, len(raw.Targets))
		for _, rawTarget := range raw.Targets {
			targets = append(targets, c.bindTarget(rawTarget))
		}

		chunk, err := NewChunk(targets, meta)
		if err != nil {
			return err
		}
		chunks = append(chunks, chunk)

		for _, t := range targets {
			componentSet[t.LookupComponentID()] = struct{}{}

			if err := c.store.SetHasSources(t.ID, len(t.SourceRoots) > 0); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to record source presence"), "target", t.ID.String())
			}
		}
	}
	c.chunks = chunks

	var components []string
	if c.enabled.GlobalLookupCache {
		for component := range componentSet {
			components = append(components, component)
		}
	}

	root := c.source.GlobalCacheRoot()
	version := cache.NewVersion(
		filepath.Join(root, cache.GlobalFormatVersionFile),
		cache.ExpectedGlobalVersion(),
		len(components) > 0,
	)
	c.global = cache.NewCompositeDiff(version, filepath.Join(root, cache.ComponentsFile), components)

	return c.advance(stateUnloaded, stateTargetsLoaded)
}

// bindTarget associates a raw target with its engine wrapper, computing the
// wrapper at most once per identity under concurrent lookup.
func (c *Context) bindTarget(raw ports.RawTarget) *Target {
	if bound, ok := c.byID.Load(raw.ID); ok {
		return bound.(*Target)
	}
	bound, _ := c.byID.LoadOrStore(raw.ID, newTarget(raw, c.source.Features()))
	return bound.(*Target)
}

// TargetFor returns the engine binding for a target identity. Asking before
// LoadTargets ran, or for an unknown target, is a lifecycle error.
func (c *Context) TargetFor(id domain.TargetID) (*Target, error) {
	if err := c.require(stateTargetsLoaded); err != nil {
		return nil, err
	}

	bound, ok := c.byID.Load(id)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrTargetNotBound, "target lookup failed"), "target", id.String())
	}
	return bound.(*Target), nil
}

// GetChunk resolves the engine's chunk view of a raw module group, keyed by
// the group's first target.
func (c *Context) GetChunk(raw ports.RawChunk) (*Chunk, error) {
	if err := c.require(stateTargetsLoaded); err != nil {
		return nil, err
	}
	if len(raw.Targets) == 0 {
		return nil, domain.ErrEmptyChunk
	}

	for _, chunk := range c.chunks {
		if chunk.Representative().ID == raw.Targets[0].ID {
			return chunk, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrChunkNotFound, "chunk lookup failed"), "target", raw.Targets[0].ID.String())
}

// Chunks returns all chunks in dependency order.
func (c *Context) Chunks() []*Chunk {
	return c.chunks
}

// GlobalDiff returns the composite diff of the global lookup cache.
func (c *Context) GlobalDiff() cache.CompositeDiff {
	return c.global
}

// CheckCacheVersions reconciles the global diff and every chunk's local state
// into a rebuild plan, performing the invalidation it decides on: caches are
// cleaned and targets dirty-marked before the plan is returned, so a build
// can never proceed while trusting a non-valid cache.
func (c *Context) CheckCacheVersions(ctx context.Context) (*domain.RebuildPlan, error) {
	spanCtx, span := c.tracer.Start(ctx, "check-cache-versions")
	plan, err := c.checkCacheVersions(spanCtx)
	span.End(err)
	return plan, err
}

func (c *Context) checkCacheVersions(ctx context.Context) (*domain.RebuildPlan, error) {
	if err := c.advance(stateTargetsLoaded, stateVersionsChecked); err != nil {
		return nil, err
	}

	plan := &domain.RebuildPlan{
		GlobalStatus:      c.global.Status(),
		GlobalDescription: c.global.String(),
		Chunks:            make([]domain.ChunkDecision, len(c.chunks)),
	}

	switch plan.GlobalStatus {
	case domain.StatusInvalid:
		// A global-format change invalidates every local cache too: local
		// caches may encode lookup-cache-relative data.
		c.logger.Warn("global lookup cache is stale, forcing full rebuild: " + c.global.String())
		if err := c.global.Clean(); err != nil {
			return nil, err
		}
		if err := c.invalidateChunks(ctx, plan, func(*Chunk) (bool, string, error) {
			return true, "global lookup cache invalidated", nil
		}); err != nil {
			return nil, err
		}

	case domain.StatusValid:
		// Surgical invalidation: unaffected chunks keep their caches.
		if err := c.invalidateChunks(ctx, plan, func(chunk *Chunk) (bool, string, error) {
			return chunk.ShouldRebuild()
		}); err != nil {
			return nil, err
		}

	case domain.StatusShouldBeCleared:
		// The feature being disabled is not evidence that compiled output is
		// wrong: delete the global files, force no rebuild.
		c.logger.Info("global lookup cache no longer needed, clearing: " + c.global.String())
		if err := c.global.Clean(); err != nil {
			return nil, err
		}
		c.fillValidDecisions(plan)

	case domain.StatusCleared:
		c.fillValidDecisions(plan)
	}

	return plan, nil
}

// invalidateChunks evaluates the decide function for every chunk and rebuilds
// the ones it selects. Chunks are independent: their marker files never
// overlap, so the per-chunk work runs in parallel.
func (c *Context) invalidateChunks(
	ctx context.Context,
	plan *domain.RebuildPlan,
	decide func(*Chunk) (bool, string, error),
) error {
	g, ctx := errgroup.WithContext(ctx)

	for i, chunk := range c.chunks {
		g.Go(func() error {
			rebuild, reason, err := decide(chunk)
			if err != nil {
				return err
			}

			decision := domain.ChunkDecision{
				Chunk:   chunk.Name(),
				Targets: targetIDs(chunk),
				Status:  domain.StatusValid,
				Rebuild: rebuild,
			}

			if rebuild {
				decision.Status = domain.StatusInvalid
				decision.Reasons = []string{reason}

				c.logger.Info(fmt.Sprintf("invalidating chunk %s: %s", chunk.Name(), reason))
				dirty, err := c.invalidateChunk(ctx, chunk)
				if err != nil {
					return err
				}
				decision.DirtyFiles = dirty
			}

			plan.Chunks[i] = decision
			return nil
		})
	}

	return g.Wait()
}

func (c *Context) fillValidDecisions(plan *domain.RebuildPlan) {
	for i, chunk := range c.chunks {
		plan.Chunks[i] = domain.ChunkDecision{
			Chunk:   chunk.Name(),
			Targets: targetIDs(chunk),
			Status:  domain.StatusValid,
		}
	}
}

func targetIDs(chunk *Chunk) []string {
	ids := make([]string, len(chunk.Targets()))
	for i, t := range chunk.Targets() {
		ids[i] = t.ID.String()
	}
	return ids
}

// invalidateChunk marks every member dirty, cleans its local cache and sets
// the rebuild marker. The status computation justifying this ran before the
// call; nothing is deleted silently.
func (c *Context) invalidateChunk(ctx context.Context, chunk *Chunk) (int, error) {
	dirty := 0
	for _, t := range chunk.Targets() {
		n, err := c.marker.MarkDirty(ctx, c.round, t.BuildTarget, t.Kind.IsSourceFile)
		if err != nil {
			return 0, zerr.With(zerr.Wrap(err, "failed to mark target dirty"), "target", t.ID.String())
		}
		dirty += n

		if err := c.store.SetRebuildAfterVersionChange(t.ID); err != nil {
			return 0, zerr.With(zerr.Wrap(err, "failed to set rebuild marker"), "target", t.ID.String())
		}
	}

	if err := chunk.CleanCaches(); err != nil {
		return 0, err
	}
	return dirty, nil
}

// CleanupCaches deletes every local cache whose status is ShouldBeCleared:
// the per-target "feature disabled" case, independent of any rebuild
// decision. May run before or after the build. Returns the cleared targets.
func (c *Context) CleanupCaches() ([]string, error) {
	if err := c.require(stateTargetsLoaded); err != nil {
		return nil, err
	}

	var cleared []string
	for _, chunk := range c.chunks {
		for _, t := range chunk.Targets() {
			if t.Diff().Status() != domain.StatusShouldBeCleared {
				continue
			}
			c.logger.Info(fmt.Sprintf("clearing stale cache for %s: %s", t.ID, t.Diff()))
			if err := t.ClearCache(); err != nil {
				return nil, err
			}
			cleared = append(cleared, t.ID.String())
		}
	}
	return cleared, nil
}

// MarkBuilt records a chunk's successful compilation: its member attributes
// and shared metadata are persisted and the rebuild markers cleared. Must
// only be called for chunks that actually compiled; skipping failed chunks
// keeps their old markers untrusted.
func (c *Context) MarkBuilt(chunk *Chunk) error {
	if err := c.require(stateVersionsChecked); err != nil {
		return err
	}

	if err := chunk.SaveVersions(); err != nil {
		return err
	}
	for _, t := range chunk.Targets() {
		if err := c.store.ClearRebuildAfterVersionChange(t.ID); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to clear rebuild marker"), "target", t.ID.String())
		}
	}
	return nil
}

// NotifyBuildFinished moves the context past the build phase.
func (c *Context) NotifyBuildFinished() error {
	return c.advance(stateVersionsChecked, stateBuildRun)
}

// Dispose persists the global diff's expected attributes and retires the
// context. Persist failures propagate: a build that cannot record its own
// cache state must not report success.
func (c *Context) Dispose() error {
	if err := c.advance(stateBuildRun, stateDisposed); err != nil {
		return err
	}
	return c.global.SaveExpectedAttributesIfNeeded()
}
