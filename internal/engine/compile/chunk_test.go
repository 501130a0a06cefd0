package compile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/cache"
	"go.trai.ch/zerr"
)

func testTarget(t *testing.T, module string, kind domain.TargetKind) *Target {
	t.Helper()
	return newTarget(ports.RawTarget{
		ID:          domain.TargetID{Module: module, Variant: domain.VariantProduction},
		Kind:        kind,
		DataRoot:    filepath.Join(t.TempDir(), module),
		SourceRoots: []string{"src"},
	}, ports.FeatureSet{LocalCaches: true})
}

func testMeta() domain.ChunkMetadata {
	return domain.ChunkMetadata{
		LanguageVersion: "2.1",
		APIVersion:      "2.0",
		ExtraFlags:      []string{"-progressive"},
	}
}

func TestNewChunk_Empty(t *testing.T) {
	if _, err := NewChunk(nil, testMeta()); !errors.Is(err, domain.ErrEmptyChunk) {
		t.Fatalf("expected empty-chunk error, got %v", err)
	}
}

func TestNewChunk_MixedKinds(t *testing.T) {
	targets := []*Target{
		testTarget(t, "core", domain.KindJVM),
		testTarget(t, "web", domain.KindJS),
	}

	_, err := NewChunk(targets, testMeta())
	if !errors.Is(err, domain.ErrMixedTargetKinds) {
		t.Fatalf("expected mixed-kinds error, got %v", err)
	}

	// The error must name every member so the broken configuration can be
	// located without a debugger.
	members := err.(*zerr.Error).Metadata()["members"].(string)
	for _, want := range []string{"core(jvm)", "web(js)"} {
		if !strings.Contains(members, want) {
			t.Errorf("expected members %q to contain %q", members, want)
		}
	}
}

func TestNewChunk_StampsPlatform(t *testing.T) {
	chunk, err := NewChunk([]*Target{testTarget(t, "core", domain.KindJS)}, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}
	if got := chunk.Metadata().Platform; got != "js" {
		t.Errorf("expected platform js, got %q", got)
	}
}

func TestChunk_Name(t *testing.T) {
	single, err := NewChunk([]*Target{testTarget(t, "core", domain.KindJVM)}, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}
	if got := single.Name(); got != "core" {
		t.Errorf("expected name core, got %q", got)
	}

	cyclic, err := NewChunk([]*Target{
		testTarget(t, "a", domain.KindJVM),
		testTarget(t, "b", domain.KindJVM),
		testTarget(t, "c", domain.KindJVM),
	}, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}
	if got := cyclic.Name(); got != "a (+2)" {
		t.Errorf("expected name %q, got %q", "a (+2)", got)
	}
}

func TestChunk_ShouldRebuild_NoPersistedMetadata(t *testing.T) {
	chunk, err := NewChunk([]*Target{testTarget(t, "core", domain.KindJVM)}, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}

	rebuild, reason, err := chunk.ShouldRebuild()
	if err != nil {
		t.Fatalf("should-rebuild failed: %v", err)
	}
	if !rebuild {
		t.Fatal("expected rebuild with no persisted metadata")
	}
	if !strings.Contains(reason, "build metadata changed") {
		t.Errorf("unexpected reason %q", reason)
	}
}

func TestChunk_SaveVersionsThenNoRebuild(t *testing.T) {
	targets := []*Target{
		testTarget(t, "a", domain.KindJVM),
		testTarget(t, "b", domain.KindJVM),
	}
	chunk, err := NewChunk(targets, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}

	if err := chunk.SaveVersions(); err != nil {
		t.Fatalf("save versions failed: %v", err)
	}

	// Saving persists both the metadata blob and the member markers; a fresh
	// binding of the same targets must see a trusted cache.
	fresh := make([]*Target, len(targets))
	for i, old := range targets {
		fresh[i] = newTarget(ports.RawTarget{
			ID:       old.ID,
			Kind:     old.Kind,
			DataRoot: old.DataRoot,
		}, ports.FeatureSet{LocalCaches: true})
	}
	chunk, err = NewChunk(fresh, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}

	rebuild, reason, err := chunk.ShouldRebuild()
	if err != nil {
		t.Fatalf("should-rebuild failed: %v", err)
	}
	if rebuild {
		t.Errorf("expected no rebuild after save, got reason %q", reason)
	}

	// Every member carries the identical metadata blob.
	want, err := chunk.Metadata().Serialize()
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	for _, target := range fresh {
		got, err := os.ReadFile(filepath.Join(target.DataRoot, cache.ChunkMetadataFile))
		if err != nil {
			t.Fatalf("failed to read metadata for %s: %v", target.ID, err)
		}
		if string(got) != string(want) {
			t.Errorf("metadata for %s differs from the canonical blob", target.ID)
		}
	}
}

func TestChunk_ShouldRebuild_MetadataMismatchShortCircuits(t *testing.T) {
	target := testTarget(t, "core", domain.KindJVM)
	chunk, err := NewChunk([]*Target{target}, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}
	if err := chunk.SaveVersions(); err != nil {
		t.Fatalf("save versions failed: %v", err)
	}

	// A metadata change must win over valid member markers.
	changed := testMeta()
	changed.LanguageVersion = "2.2"
	chunk, err = NewChunk([]*Target{target}, changed)
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}

	rebuild, reason, err := chunk.ShouldRebuild()
	if err != nil {
		t.Fatalf("should-rebuild failed: %v", err)
	}
	if !rebuild {
		t.Fatal("expected rebuild after metadata change")
	}
	if !strings.Contains(reason, "build metadata changed") {
		t.Errorf("unexpected reason %q", reason)
	}
}

func TestChunk_ShouldRebuild_StaleMemberMarker(t *testing.T) {
	dataRoot := filepath.Join(t.TempDir(), "core")
	if err := os.MkdirAll(dataRoot, 0o750); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataRoot, cache.LocalFormatVersionFile), []byte("9042102"), 0o644); err != nil {
		t.Fatalf("failed to write stale marker: %v", err)
	}

	meta := testMeta()
	meta.Platform = domain.KindJVM.String()
	blob, err := meta.Serialize()
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dataRoot, cache.ChunkMetadataFile), blob, 0o644); err != nil {
		t.Fatalf("failed to write metadata: %v", err)
	}

	target := newTarget(ports.RawTarget{
		ID:       domain.TargetID{Module: "core"},
		Kind:     domain.KindJVM,
		DataRoot: dataRoot,
	}, ports.FeatureSet{LocalCaches: true})
	chunk, err := NewChunk([]*Target{target}, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}

	rebuild, reason, err := chunk.ShouldRebuild()
	if err != nil {
		t.Fatalf("should-rebuild failed: %v", err)
	}
	if !rebuild {
		t.Fatal("expected rebuild for stale member marker")
	}
	if !strings.Contains(reason, "core") {
		t.Errorf("expected reason to name the member, got %q", reason)
	}
}

func TestChunk_CleanCaches(t *testing.T) {
	target := testTarget(t, "core", domain.KindJVM)
	chunk, err := NewChunk([]*Target{target}, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}
	if err := chunk.SaveVersions(); err != nil {
		t.Fatalf("save versions failed: %v", err)
	}

	if err := chunk.CleanCaches(); err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	for _, name := range []string{cache.LocalFormatVersionFile, cache.ChunkMetadataFile} {
		if _, err := os.Stat(filepath.Join(target.DataRoot, name)); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed", name)
		}
	}

	// Cleaning an already-clean chunk is a no-op.
	if err := chunk.CleanCaches(); err != nil {
		t.Errorf("second clean failed: %v", err)
	}
}

func TestChunk_Fingerprint_Stable(t *testing.T) {
	a, err := NewChunk([]*Target{testTarget(t, "a", domain.KindJVM)}, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}
	b, err := NewChunk([]*Target{testTarget(t, "b", domain.KindJVM)}, testMeta())
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("expected identical metadata to fingerprint identically")
	}

	changed := testMeta()
	changed.ExtraFlags = append(changed.ExtraFlags, "-Xcontext-receivers")
	c, err := NewChunk([]*Target{testTarget(t, "c", domain.KindJVM)}, changed)
	if err != nil {
		t.Fatalf("new chunk failed: %v", err)
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("expected flag change to change the fingerprint")
	}
}
