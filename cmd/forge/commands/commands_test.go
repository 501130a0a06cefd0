package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/cmd/forge/commands"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/compile"
	"go.uber.org/mock/gomock"
)

// newCLI builds a CLI over one mocked single-module project rooted in a temp
// directory.
func newCLI(t *testing.T) (*commands.CLI, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "core", "src")
	require.NoError(t, os.MkdirAll(src, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Main.frg"), []byte("fun main() {}"), 0o644))

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	source := mocks.NewMockTargetGraphSource(ctrl)
	source.EXPECT().LoadChunks().Return([]ports.RawChunk{{Targets: []ports.RawTarget{{
		ID:          domain.TargetID{Module: "core", Variant: domain.VariantProduction},
		Kind:        domain.KindJVM,
		DataRoot:    filepath.Join(root, "core", "data"),
		SourceRoots: []string{src},
	}}}}, nil).AnyTimes()
	source.EXPECT().Features().Return(ports.FeatureSet{LocalCaches: true, GlobalLookupCache: true}).AnyTimes()
	source.EXPECT().Metadata().Return(domain.ChunkMetadata{LanguageVersion: "2.1"}).AnyTimes()
	source.EXPECT().GlobalCacheRoot().Return(filepath.Join(root, "global")).AnyTimes()

	dataStore := mocks.NewMockTargetDataStore(ctrl)
	dataStore.EXPECT().SetHasSources(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	dataStore.EXPECT().SetRebuildAfterVersionChange(gomock.Any()).Return(nil).AnyTimes()
	dataStore.EXPECT().ClearRebuildAfterVersionChange(gomock.Any()).Return(nil).AnyTimes()
	dataStore.EXPECT().Close().Return(nil).AnyTimes()

	tracer := telemetry.NewNoOpTracer()
	engine := compile.NewContext(log, source, fs.NewRecorder(fs.NewWalker()), dataStore, tracer)

	cli := commands.New(app.New(log, engine, dataStore, tracer))
	out := &bytes.Buffer{}
	cli.SetOutput(out)
	return cli, out
}

func TestPlan_RendersDecisions(t *testing.T) {
	cli, out := newCLI(t)
	cli.SetArgs([]string{"plan"})

	require.NoError(t, cli.Execute(context.Background()))

	require.Contains(t, out.String(), "global: invalid")
	require.Contains(t, out.String(), "core: rebuild")
	require.Contains(t, out.String(), "1 of 1 chunks need rebuilding")
}

func TestPlan_JSON(t *testing.T) {
	cli, out := newCLI(t)
	cli.SetArgs([]string{"plan", "--json"})

	require.NoError(t, cli.Execute(context.Background()))

	var plan domain.RebuildPlan
	require.NoError(t, json.Unmarshal(out.Bytes(), &plan))
	require.Len(t, plan.Chunks, 1)
	require.True(t, plan.Chunks[0].Rebuild)
}

func TestClean(t *testing.T) {
	cli, _ := newCLI(t)
	cli.SetArgs([]string{"clean"})

	require.NoError(t, cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	cli, out := newCLI(t)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	require.Contains(t, out.String(), "dev")
}

func TestRoot_UnknownCommand(t *testing.T) {
	cli, _ := newCLI(t)
	cli.SetArgs([]string{"bogus"})

	require.Error(t, cli.Execute(context.Background()))
}
