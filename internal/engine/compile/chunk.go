package compile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Chunk is a maximal set of mutually dependent targets compiled together by
// one compiler invocation. All members share one compiler backend and one
// invocation fingerprint; the first member is the representative used for
// chunk-level naming.
type Chunk struct {
	targets []*Target
	meta    domain.ChunkMetadata
}

// NewChunk groups targets into a chunk and stamps the build metadata with the
// chunk's platform. Mixing compiler backends inside one chunk is a fatal
// configuration error reported with the full member list.
func NewChunk(targets []*Target, meta domain.ChunkMetadata) (*Chunk, error) {
	if len(targets) == 0 {
		return nil, domain.ErrEmptyChunk
	}

	kind := targets[0].Kind
	for _, t := range targets[1:] {
		if t.Kind != kind {
			return nil, zerr.With(zerr.Wrap(domain.ErrMixedTargetKinds, "cannot group targets"), "members", memberList(targets))
		}
	}

	meta.Platform = kind.String()
	return &Chunk{targets: targets, meta: meta}, nil
}

func memberList(targets []*Target) string {
	ids := make([]string, len(targets))
	for i, t := range targets {
		ids[i] = fmt.Sprintf("%s(%s)", t.ID, t.Kind)
	}
	return strings.Join(ids, ", ")
}

// Representative returns the chunk's first member.
func (c *Chunk) Representative() *Target {
	return c.targets[0]
}

// Name returns the chunk's display name, derived from the representative.
func (c *Chunk) Name() string {
	if len(c.targets) > 1 {
		return fmt.Sprintf("%s (+%d)", c.targets[0].ID, len(c.targets)-1)
	}
	return c.targets[0].ID.String()
}

// Targets returns the chunk members in dependency order.
func (c *Chunk) Targets() []*Target {
	return c.targets
}

// Kind returns the compiler backend shared by every member.
func (c *Chunk) Kind() domain.TargetKind {
	return c.targets[0].Kind
}

// Metadata returns the expected invocation metadata for this chunk.
func (c *Chunk) Metadata() domain.ChunkMetadata {
	return c.meta
}

// Fingerprint is a short digest of the serialized metadata, used for logging
// and plan output.
func (c *Chunk) Fingerprint() string {
	data, err := c.meta.Serialize()
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// ShouldRebuild reports whether the chunk must be recompiled, with a
// human-readable reason. The persisted chunk metadata is checked first: it is
// a cheap byte comparison and a mismatch forces a rebuild without touching
// any member's cache marker. Only when the metadata matches are the member
// diffs consulted.
func (c *Chunk) ShouldRebuild() (bool, string, error) {
	expected, err := c.meta.Serialize()
	if err != nil {
		return false, "", err
	}

	// Missing or unreadable metadata folds into a mismatch: an untrusted
	// fingerprint means an untrusted cache.
	persisted, err := os.ReadFile(c.Representative().metadataPath()) //nolint:gosec // Path is derived from the cache root
	if err != nil || !bytes.Equal(persisted, expected) {
		return true, fmt.Sprintf("build metadata changed (fingerprint %s)", c.Fingerprint()), nil
	}

	for _, t := range c.targets {
		if t.Diff().Status() == domain.StatusInvalid {
			return true, fmt.Sprintf("%s: %s", t.ID, t.Diff()), nil
		}
	}
	return false, "", nil
}

// SaveVersions persists every member's local cache attributes and writes the
// identical serialized metadata blob to each member's metadata path. Called
// by the build driver only after the chunk compiled successfully; a failed
// chunk keeps its old markers so a future build does not trust output that
// was never produced.
func (c *Chunk) SaveVersions() error {
	for _, t := range c.targets {
		if err := t.Diff().SaveExpectedAttributesIfNeeded(); err != nil {
			return err
		}
	}

	data, err := c.meta.Serialize()
	if err != nil {
		return err
	}

	for _, t := range c.targets {
		path := t.metadataPath()
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", path)
		}
		//nolint:gosec // Path is derived from the cache root
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write chunk metadata"), "path", path)
		}
	}
	return nil
}

// CleanCaches removes every member's cache marker and metadata file.
func (c *Chunk) CleanCaches() error {
	for _, t := range c.targets {
		if err := t.ClearCache(); err != nil {
			return err
		}
		if err := os.Remove(t.metadataPath()); err != nil && !os.IsNotExist(err) {
			return zerr.With(zerr.Wrap(err, "failed to remove chunk metadata"), "path", t.metadataPath())
		}
	}
	return nil
}
