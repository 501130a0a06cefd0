package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/core/domain"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func jvmTarget(root string, sourceRoots ...string) domain.BuildTarget {
	return domain.BuildTarget{
		ID:          domain.TargetID{Module: "core"},
		Kind:        domain.KindJVM,
		DataRoot:    filepath.Join(root, "data"),
		SourceRoots: sourceRoots,
	}
}

func readListing(t *testing.T, target domain.BuildTarget) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(target.DataRoot, fs.DirtySourcesFile))
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRecorder_MarkDirty_CollectsOnlySources(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFiles(t, src, "Main.frg", "Util.java", "logo.png", "sub/Deep.frg")

	target := jvmTarget(root, src)
	rec := fs.NewRecorder(fs.NewWalker())

	n, err := rec.MarkDirty(context.Background(), 1, target, domain.KindJVM.IsSourceFile)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	listing := readListing(t, target)
	require.Len(t, listing, 3)
	for _, path := range listing {
		require.True(t, domain.KindJVM.IsSourceFile(path), "unexpected entry %q", path)
	}
}

func TestRecorder_MarkDirty_JSIgnoresJava(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFiles(t, src, "Main.frg", "Util.java")

	target := jvmTarget(root, src)
	target.Kind = domain.KindJS
	rec := fs.NewRecorder(fs.NewWalker())

	n, err := rec.MarkDirty(context.Background(), 1, target, domain.KindJS.IsSourceFile)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRecorder_MarkDirty_MissingRootIsEmpty(t *testing.T) {
	root := t.TempDir()
	target := jvmTarget(root, filepath.Join(root, "nope"))
	rec := fs.NewRecorder(fs.NewWalker())

	n, err := rec.MarkDirty(context.Background(), 1, target, domain.KindJVM.IsSourceFile)
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = os.Stat(filepath.Join(target.DataRoot, fs.DirtySourcesFile))
	require.True(t, os.IsNotExist(err))
}

func TestRecorder_MarkDirty_LaterRoundsMerge(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFiles(t, src, "Main.frg")

	target := jvmTarget(root, src)
	rec := fs.NewRecorder(fs.NewWalker())

	_, err := rec.MarkDirty(context.Background(), 1, target, domain.KindJVM.IsSourceFile)
	require.NoError(t, err)

	writeFiles(t, src, "More.frg")
	n, err := rec.MarkDirty(context.Background(), 2, target, func(path string) bool {
		return strings.HasSuffix(path, "More.frg")
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	listing := readListing(t, target)
	require.Len(t, listing, 2)
}

func TestRecorder_MarkDirty_FirstRoundReplaces(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFiles(t, src, "Main.frg")

	target := jvmTarget(root, src)
	rec := fs.NewRecorder(fs.NewWalker())

	_, err := rec.MarkDirty(context.Background(), 1, target, domain.KindJVM.IsSourceFile)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(src, "Main.frg")))
	writeFiles(t, src, "Other.frg")

	n, err := rec.MarkDirty(context.Background(), 1, target, domain.KindJVM.IsSourceFile)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "Other.frg", filepath.Base(readListing(t, target)[0]))
}

func TestRecorder_MarkDirty_Cancelled(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFiles(t, src, "Main.frg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := fs.NewRecorder(fs.NewWalker())
	_, err := rec.MarkDirty(ctx, 1, jvmTarget(root, src), domain.KindJVM.IsSourceFile)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWalker_SkipsVCSDirectories(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Main.frg", ".git/objects/blob", ".jj/store/file")

	var seen []string
	for path := range fs.NewWalker().WalkFiles(root, nil) {
		seen = append(seen, path)
	}
	require.Len(t, seen, 1)
	require.Equal(t, "Main.frg", filepath.Base(seen[0]))
}
