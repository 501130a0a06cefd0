package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version reads and writes a single-integer cache format marker file.
//
// Reads never fail: a missing file, an unreadable file and non-numeric
// content all fold into "absent", because all three mean the same thing to a
// caller — this cache cannot be trusted.
type Version struct {
	path     string
	expected int
	enabled  bool
}

// NewVersion creates a Version for the marker at path. expected is the
// composite format version the current build requires; enabled is whether the
// build configuration wants this cache at all.
func NewVersion(path string, expected int, enabled bool) Version {
	return Version{
		path:     filepath.Clean(path),
		expected: expected,
		enabled:  enabled,
	}
}

// Path returns the marker file location.
func (v Version) Path() string {
	return v.path
}

// Enabled reports whether the owning feature is enabled this build.
func (v Version) Enabled() bool {
	return v.enabled
}

// Read returns the integer persisted on disk. ok is false when the file is
// missing, unreadable or not a decimal integer.
func (v Version) Read() (actual int, ok bool) {
	data, err := os.ReadFile(v.path) //nolint:gosec // Path is derived from the cache root
	if err != nil {
		return 0, false
	}

	actual, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return actual, true
}

// Expected returns the version the current build requires. ok is false when
// the feature is disabled, in which case nothing is ever written.
func (v Version) Expected() (expected int, ok bool) {
	if !v.enabled {
		return 0, false
	}
	return v.expected, true
}

// Persist writes the expected version, creating parent directories as needed.
// The file content is written in one operation so an interrupted build leaves
// either the old or the new marker, never a partial one. No-op when the
// feature is disabled: a missing file is the disabled-and-clean state.
func (v Version) Persist() error {
	expected, ok := v.Expected()
	if !ok {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(v.path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", v.path)
	}

	data := []byte(strconv.Itoa(expected))
	//nolint:gosec // Path is derived from the cache root
	if err := os.WriteFile(v.path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write cache version"), "path", v.path)
	}
	return nil
}

// Clean deletes the marker. It is idempotent: a missing file is not an error.
func (v Version) Clean() error {
	return removeFile(v.path, "failed to remove cache version")
}

func removeFile(path, msg string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, msg), "path", path)
	}
	return nil
}
