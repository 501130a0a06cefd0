// Package compile implements the per-build orchestration of the cache
// decision engine: targets bound to their cache state, chunks of mutually
// dependent targets, and the compile context driving the check/persist
// protocol.
package compile

import (
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/cache"
)

// Target is a raw build target bound to its local cache state for the
// duration of one build.
type Target struct {
	domain.BuildTarget

	diff cache.AttributesDiff
}

func newTarget(raw ports.RawTarget, features ports.FeatureSet) *Target {
	version := cache.NewVersion(
		filepath.Join(raw.DataRoot, cache.LocalFormatVersionFile),
		cache.ExpectedLocalVersion(),
		features.LocalCaches,
	)

	return &Target{
		BuildTarget: domain.BuildTarget{
			ID:          raw.ID,
			Kind:        raw.Kind,
			DataRoot:    raw.DataRoot,
			SourceRoots: raw.SourceRoots,
		},
		diff: cache.NewAttributesDiff(version),
	}
}

// Diff returns the target's local cache attributes diff.
func (t *Target) Diff() cache.AttributesDiff {
	return t.diff
}

// ClearCache deletes the target's cache marker and rebinds the diff to the
// now-empty disk state, so a later pass does not report the same clean twice.
func (t *Target) ClearCache() error {
	if err := t.diff.Clean(); err != nil {
		return err
	}
	t.diff = t.diff.Reread()
	return nil
}

// LookupComponentID is the component this target contributes to the global
// lookup cache.
func (t *Target) LookupComponentID() string {
	return t.Kind.LookupComponentID()
}

func (t *Target) metadataPath() string {
	return filepath.Join(t.DataRoot, cache.ChunkMetadataFile)
}
