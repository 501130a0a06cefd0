// Package cache implements the version and attribute markers that decide
// whether a persisted cache can be trusted by the current compiler build.
package cache

// On-disk marker file names, relative to a cache root directory.
const (
	// LocalFormatVersionFile holds the per-target local cache format version.
	LocalFormatVersionFile = "format-version.txt"

	// GlobalFormatVersionFile holds the global lookup-cache format version.
	GlobalFormatVersionFile = "data-container-format-version.txt"

	// ComponentsFile is the newline-separated component listing sidecar of
	// the global version file.
	ComponentsFile = "components.txt"

	// ChunkMetadataFile holds the serialized compiler-invocation fingerprint,
	// one identical copy per chunk member.
	ChunkMetadataFile = "build-meta.json"
)

// Format revisions embedded in the composite version numbers. Bumping any of
// these invalidates the corresponding caches on the next build. The packing
// is an engine constant, not a protocol: it only has to be stable across runs
// of the same build and different across builds with any sub-format change.
const (
	engineFormatVersion = 9

	metadataFormatMajor = 4
	metadataFormatMinor = 21

	dataContainerFormat = 3

	lookupFormatMajor = 1
	lookupFormatMinor = 7
)

// ExpectedLocalVersion is the composite format version the current build
// expects to find in a target's local cache marker.
func ExpectedLocalVersion() int {
	return engineFormatVersion*1_000_000 +
		metadataFormatMajor*10_000 +
		metadataFormatMinor*100 +
		dataContainerFormat
}

// ExpectedGlobalVersion is the composite format version the current build
// expects to find in the global lookup cache marker.
func ExpectedGlobalVersion() int {
	return engineFormatVersion*1_000_000 +
		lookupFormatMajor*10_000 +
		lookupFormatMinor*100 +
		dataContainerFormat
}
