package ports

import "go.trai.ch/forge/internal/core/domain"

// TargetDataStore is the persistent per-target key-value marker store the
// engine sets and clears. The storage itself is an external collaborator.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type TargetDataStore interface {
	// SetRebuildAfterVersionChange records that the target was invalidated by
	// a cache-format change and must be fully rebuilt.
	SetRebuildAfterVersionChange(id domain.TargetID) error

	// ClearRebuildAfterVersionChange removes the marker after a successful
	// rebuild.
	ClearRebuildAfterVersionChange(id domain.TargetID) error

	// RebuildAfterVersionChange reports whether the marker is set.
	RebuildAfterVersionChange(id domain.TargetID) (bool, error)

	// SetHasSources records whether the target currently owns source files.
	SetHasSources(id domain.TargetID, has bool) error

	// HasSources reports the recorded source presence for the target.
	HasSources(id domain.TargetID) (bool, error)

	// Close releases the underlying storage.
	Close() error
}
