// Package domain contains the core domain models for the incremental-build
// decision engine.
package domain

// CacheStatus is the outcome of comparing a persisted cache against the
// attributes the current compiler build expects. It drives every rebuild and
// cleanup decision the engine makes.
type CacheStatus int

const (
	// StatusValid means the cache exists and matches the expected
	// version/components; it is usable as-is.
	StatusValid CacheStatus = iota

	// StatusInvalid means the cache is enabled but missing, corrupt, or
	// mismatched; the owning targets must be rebuilt.
	StatusInvalid

	// StatusShouldBeCleared means a cache exists but the feature it served is
	// no longer enabled; the cache must be deleted, no rebuild is needed.
	StatusShouldBeCleared

	// StatusCleared means the feature is disabled and no cache is present.
	// Only composite (global) diffs report this state; plain per-target diffs
	// report StatusValid instead because they only need a binary
	// rebuild-or-not signal.
	StatusCleared
)

// MarshalText implements encoding.TextMarshaler so statuses render as their
// names in JSON plan output.
func (s CacheStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, the inverse of
// MarshalText. Unknown names map to StatusInvalid, never to StatusValid.
func (s *CacheStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "valid":
		*s = StatusValid
	case "should-be-cleared":
		*s = StatusShouldBeCleared
	case "cleared":
		*s = StatusCleared
	default:
		*s = StatusInvalid
	}
	return nil
}

// String returns a human-readable name for the status.
func (s CacheStatus) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	case StatusShouldBeCleared:
		return "should-be-cleared"
	case StatusCleared:
		return "cleared"
	default:
		return "unknown"
	}
}
