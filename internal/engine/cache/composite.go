package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// CompositeDiff is the attributes diff of the global lookup cache. Beyond the
// version number it tracks the set of named components (one per participating
// compiler backend) that must match exactly: the lookup index only guarantees
// completeness for exactly the components it was built with, so a previously
// indexed component that is no longer needed makes the cache just as stale as
// a missing one.
type CompositeDiff struct {
	version        Version
	actualVersion  int
	versionPresent bool

	componentsPath string
	expected       []string
	actual         []string
}

// NewCompositeDiff constructs the global diff. expectedComponents is the set
// of backend identifiers participating in this build; an empty set means the
// global cache is disabled. The version marker and the component listing are
// both read eagerly; unreadable files fold into absent/empty.
func NewCompositeDiff(version Version, componentsPath string, expectedComponents []string) CompositeDiff {
	actualVersion, versionPresent := version.Read()

	return CompositeDiff{
		version:        version,
		actualVersion:  actualVersion,
		versionPresent: versionPresent,
		componentsPath: filepath.Clean(componentsPath),
		expected:       normalizeComponents(expectedComponents),
		actual:         readComponents(componentsPath),
	}
}

// normalizeComponents sorts and deduplicates so set comparison is a plain
// slice equality.
func normalizeComponents(components []string) []string {
	if len(components) == 0 {
		return nil
	}
	sorted := slices.Clone(components)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// readComponents reads the newline-separated listing. Missing or unreadable
// files yield an empty set.
func readComponents(path string) []string {
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the cache root
	if err != nil {
		return nil
	}

	var components []string
	for line := range strings.Lines(string(data)) {
		if c := strings.TrimSpace(line); c != "" {
			components = append(components, c)
		}
	}
	return normalizeComponents(components)
}

// Status derives the global cache status.
//
// Unlike the per-target diff, the disabled states distinguish Cleared from
// ShouldBeCleared: diagnosing a flapping configuration across builds needs
// "never had one" kept apart from "just cleaned one".
func (d CompositeDiff) Status() domain.CacheStatus {
	if len(d.expected) > 0 {
		if d.versionMatches() && slices.Equal(d.expected, d.actual) {
			return domain.StatusValid
		}
		return domain.StatusInvalid
	}

	if len(d.actual) > 0 {
		return domain.StatusShouldBeCleared
	}
	return domain.StatusCleared
}

func (d CompositeDiff) versionMatches() bool {
	expected, ok := d.version.Expected()
	return ok && d.versionPresent && d.actualVersion == expected
}

// ExpectedComponents returns the normalized component set for this build.
func (d CompositeDiff) ExpectedComponents() []string {
	return slices.Clone(d.expected)
}

// ActualComponents returns the component set read from disk.
func (d CompositeDiff) ActualComponents() []string {
	return slices.Clone(d.actual)
}

// SaveExpectedAttributesIfNeeded persists the version marker, then brings the
// component listing in line with the expected set: deleted when the set is
// empty, rewritten only when it actually changed. Saving twice in a row
// produces byte-identical files.
func (d CompositeDiff) SaveExpectedAttributesIfNeeded() error {
	if err := d.version.Persist(); err != nil {
		return err
	}

	if len(d.expected) == 0 {
		return removeFile(d.componentsPath, "failed to remove component listing")
	}

	if slices.Equal(d.expected, d.actual) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(d.componentsPath), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", d.componentsPath)
	}

	data := []byte(strings.Join(d.expected, "\n") + "\n")
	//nolint:gosec // Path is derived from the cache root
	if err := os.WriteFile(d.componentsPath, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write component listing"), "path", d.componentsPath)
	}
	return nil
}

// Clean deletes both the version marker and the component listing.
func (d CompositeDiff) Clean() error {
	if err := d.version.Clean(); err != nil {
		return err
	}
	return removeFile(d.componentsPath, "failed to remove component listing")
}

// String describes the diff for logging, old values before new.
func (d CompositeDiff) String() string {
	version := "absent"
	if d.versionPresent {
		version = fmt.Sprintf("%d", d.actualVersion)
	}

	expected, ok := d.version.Expected()
	if !ok {
		return fmt.Sprintf("global cache disabled, found version %s, components [%s]",
			version, strings.Join(d.actual, " "))
	}
	return fmt.Sprintf("global cache: found version %s, expected %d; found components [%s], expected [%s]",
		version, expected, strings.Join(d.actual, " "), strings.Join(d.expected, " "))
}
