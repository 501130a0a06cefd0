package ports

import "go.trai.ch/forge/internal/core/domain"

// RawTarget is one compilable module variant as discovered from project
// configuration, before the engine binds it to its cache state.
type RawTarget struct {
	ID          domain.TargetID
	Kind        domain.TargetKind
	DataRoot    string
	SourceRoots []string
}

// RawChunk is a maximal group of mutually dependent raw targets that must be
// compiled together by one compiler invocation.
type RawChunk struct {
	Targets []RawTarget
}

// FeatureSet carries the per-feature enabled status for the current build
// configuration.
type FeatureSet struct {
	// LocalCaches enables the per-target incremental caches.
	LocalCaches bool
	// GlobalLookupCache enables the cross-module symbol-lookup cache.
	GlobalLookupCache bool
}

// TargetGraphSource supplies the module graph in dependency order, the
// feature toggles and the compiler-invocation metadata for this build. The
// discovery itself (parsing project configuration, resolving dependencies) is
// an external concern; the decision engine only consumes its output.
//
//go:generate go run go.uber.org/mock/mockgen -source=targets.go -destination=mocks/mock_targets.go -package=mocks
type TargetGraphSource interface {
	// LoadChunks returns the chunked module graph sorted so every chunk comes
	// after the chunks it depends on.
	LoadChunks() ([]RawChunk, error)

	// Features returns the enabled status per cache feature.
	Features() FeatureSet

	// Metadata returns the compiler-invocation fingerprint for this build.
	// The platform component is filled in per chunk by the engine.
	Metadata() domain.ChunkMetadata

	// GlobalCacheRoot is the directory holding the global lookup cache and
	// its marker files.
	GlobalCacheRoot() string
}
