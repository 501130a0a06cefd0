package ports

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// DirtyMarker is the host build system's file-dirtiness primitive: it
// schedules the target's files matching the predicate for recompilation in
// the given build round. The engine calls it before any rebuild but does not
// implement the scheduling itself.
//
//go:generate go run go.uber.org/mock/mockgen -source=dirty.go -destination=mocks/mock_dirty.go -package=mocks
type DirtyMarker interface {
	// MarkDirty returns the number of files scheduled.
	MarkDirty(ctx context.Context, round int, target domain.BuildTarget, match func(path string) bool) (int, error)
}
