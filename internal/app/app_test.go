package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/cache"
	"go.trai.ch/forge/internal/engine/compile"
	"go.uber.org/mock/gomock"
)

// newTestApp builds an App over a real dirty-source recorder and a mocked
// module graph rooted at root. Every call creates a fresh engine context, the
// way every build run does.
func newTestApp(t *testing.T, root string, chunks []ports.RawChunk) *app.App {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	source := mocks.NewMockTargetGraphSource(ctrl)
	source.EXPECT().LoadChunks().Return(chunks, nil).AnyTimes()
	source.EXPECT().Features().Return(ports.FeatureSet{LocalCaches: true, GlobalLookupCache: true}).AnyTimes()
	source.EXPECT().Metadata().Return(domain.ChunkMetadata{LanguageVersion: "2.1", APIVersion: "2.0"}).AnyTimes()
	source.EXPECT().GlobalCacheRoot().Return(filepath.Join(root, "global")).AnyTimes()

	dataStore := mocks.NewMockTargetDataStore(ctrl)
	dataStore.EXPECT().SetHasSources(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	dataStore.EXPECT().SetRebuildAfterVersionChange(gomock.Any()).Return(nil).AnyTimes()
	dataStore.EXPECT().ClearRebuildAfterVersionChange(gomock.Any()).Return(nil).AnyTimes()
	dataStore.EXPECT().Close().Return(nil).AnyTimes()

	tracer := telemetry.NewNoOpTracer()
	engine := compile.NewContext(log, source, fs.NewRecorder(fs.NewWalker()), dataStore, tracer)
	return app.New(log, engine, dataStore, tracer)
}

func seedModule(t *testing.T, root, name string) ports.RawChunk {
	t.Helper()
	src := filepath.Join(root, name, "src")
	require.NoError(t, os.MkdirAll(src, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Main.frg"), []byte("fun main() {}"), 0o644))

	return ports.RawChunk{Targets: []ports.RawTarget{{
		ID:          domain.TargetID{Module: name, Variant: domain.VariantProduction},
		Kind:        domain.KindJVM,
		DataRoot:    filepath.Join(root, name, "data"),
		SourceRoots: []string{src},
	}}}
}

func TestApp_PlanDryRunDoesNotPersist(t *testing.T) {
	root := t.TempDir()
	chunks := []ports.RawChunk{seedModule(t, root, "core")}

	plan, err := newTestApp(t, root, chunks).Plan(context.Background(), app.PlanOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, plan.RebuildCount())
	require.Equal(t, 1, plan.DirtyFileCount())

	// Dirty marking happened for real.
	_, err = os.Stat(filepath.Join(root, "core", "data", fs.DirtySourcesFile))
	require.NoError(t, err)

	// Nothing was committed: the next run still sees untrusted caches.
	plan, err = newTestApp(t, root, chunks).Plan(context.Background(), app.PlanOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, plan.RebuildCount())
}

func TestApp_PlanCommitPersists(t *testing.T) {
	root := t.TempDir()
	chunks := []ports.RawChunk{seedModule(t, root, "core"), seedModule(t, root, "web")}

	plan, err := newTestApp(t, root, chunks).Plan(context.Background(), app.PlanOptions{Commit: true})
	require.NoError(t, err)
	require.Equal(t, 2, plan.RebuildCount())

	// The committed attributes make the next run clean.
	plan, err = newTestApp(t, root, chunks).Plan(context.Background(), app.PlanOptions{})
	require.NoError(t, err)
	require.Equal(t, 0, plan.RebuildCount())
	require.Equal(t, domain.StatusValid, plan.GlobalStatus)
}

func TestApp_Clean(t *testing.T) {
	root := t.TempDir()
	chunks := []ports.RawChunk{seedModule(t, root, "core")}

	_, err := newTestApp(t, root, chunks).Plan(context.Background(), app.PlanOptions{Commit: true})
	require.NoError(t, err)

	require.NoError(t, newTestApp(t, root, chunks).Clean(context.Background()))

	for _, path := range []string{
		filepath.Join(root, "core", "data", cache.LocalFormatVersionFile),
		filepath.Join(root, "core", "data", cache.ChunkMetadataFile),
		filepath.Join(root, "global", cache.GlobalFormatVersionFile),
		filepath.Join(root, "global", cache.ComponentsFile),
	} {
		_, err := os.Stat(path)
		require.True(t, os.IsNotExist(err), "expected %s to be removed", path)
	}

	// A plan after clean rebuilds from scratch.
	plan, err := newTestApp(t, root, chunks).Plan(context.Background(), app.PlanOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, plan.RebuildCount())
}

func TestApp_Close(t *testing.T) {
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	dataStore := mocks.NewMockTargetDataStore(ctrl)
	dataStore.EXPECT().Close().Return(nil)

	tracer := telemetry.NewNoOpTracer()
	source := mocks.NewMockTargetGraphSource(ctrl)
	engine := compile.NewContext(log, source, fs.NewRecorder(fs.NewWalker()), dataStore, tracer)

	require.NoError(t, app.New(log, engine, dataStore, tracer).Close())
}
