package fs

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// DirtySourcesFile is the per-target listing of sources scheduled for
// recompilation, written under the target's data root.
const DirtySourcesFile = "dirty-sources.txt"

// Recorder implements ports.DirtyMarker on the file system: it walks a
// target's source roots, collects the files the backend's predicate selects
// and writes them to the target's dirty listing for the compiler driver to
// pick up.
type Recorder struct {
	walker *Walker
}

var _ ports.DirtyMarker = (*Recorder)(nil)

// NewRecorder creates a recorder walking with walker.
func NewRecorder(walker *Walker) *Recorder {
	return &Recorder{walker: walker}
}

// MarkDirty schedules every matching source file under target's source roots
// for recompilation and returns how many it found. The first round replaces
// the listing; later rounds merge into it, so re-marking never loses files
// already scheduled. The listing is written in one operation.
func (r *Recorder) MarkDirty(ctx context.Context, round int, target domain.BuildTarget, match func(path string) bool) (int, error) {
	var found []string
	for _, root := range target.SourceRoots {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		for path := range r.walker.WalkFiles(root, nil) {
			if match(path) {
				found = append(found, path)
			}
		}
	}

	if round > 1 {
		found = append(found, r.existing(target)...)
	}
	found = normalizePaths(found)

	path := filepath.Join(target.DataRoot, DirtySourcesFile)
	if len(found) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return 0, zerr.With(zerr.Wrap(err, "failed to remove dirty listing"), "path", path)
		}
		return 0, nil
	}

	if err := os.MkdirAll(target.DataRoot, 0o750); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to create data root"), "path", target.DataRoot)
	}

	data := []byte(strings.Join(found, "\n") + "\n")
	//nolint:gosec // Path is derived from the target's data root
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to write dirty listing"), "path", path)
	}
	return len(found), nil
}

// existing reads the listing from a previous round; unreadable listings are
// treated as empty.
func (r *Recorder) existing(target domain.BuildTarget) []string {
	data, err := os.ReadFile(filepath.Join(target.DataRoot, DirtySourcesFile)) //nolint:gosec // Path is derived from the target's data root
	if err != nil {
		return nil
	}

	var paths []string
	for line := range strings.Lines(string(data)) {
		if p := strings.TrimSpace(line); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func normalizePaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	slices.Sort(paths)
	return slices.Compact(paths)
}
