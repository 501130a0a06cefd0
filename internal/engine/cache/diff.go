package cache

import (
	"fmt"

	"go.trai.ch/forge/internal/core/domain"
)

// AttributesDiff compares one cache's persisted attributes against what the
// current build expects and exposes the save/clean operations that resolve
// the difference. The version is read once, at construction, so the decision
// is made against a single consistent snapshot.
type AttributesDiff struct {
	version Version
	actual  int
	present bool
}

// NewAttributesDiff constructs a diff for the given version marker, reading
// the on-disk state eagerly.
func NewAttributesDiff(version Version) AttributesDiff {
	actual, present := version.Read()
	return AttributesDiff{
		version: version,
		actual:  actual,
		present: present,
	}
}

// Status derives the cache status.
//
// When the feature is disabled and nothing is on disk the status is Valid,
// not Cleared: a plain per-target diff only needs a binary rebuild-or-not
// signal. The composite global diff refines this, see CompositeDiff.
func (d AttributesDiff) Status() domain.CacheStatus {
	if d.version.Enabled() {
		if expected, ok := d.version.Expected(); ok && d.present && d.actual == expected {
			return domain.StatusValid
		}
		return domain.StatusInvalid
	}

	if d.present {
		return domain.StatusShouldBeCleared
	}
	return domain.StatusValid
}

// SaveExpectedAttributesIfNeeded persists the expected version iff the
// feature is enabled. Saving twice in a row produces a byte-identical file.
func (d AttributesDiff) SaveExpectedAttributesIfNeeded() error {
	return d.version.Persist()
}

// Clean deletes the version marker. Idempotent.
func (d AttributesDiff) Clean() error {
	return d.version.Clean()
}

// Reread returns a fresh diff over the same marker, snapshotting the on-disk
// state again.
func (d AttributesDiff) Reread() AttributesDiff {
	return NewAttributesDiff(d.version)
}

// Actual returns the persisted version and whether one was readable.
func (d AttributesDiff) Actual() (int, bool) {
	return d.actual, d.present
}

// String describes the diff for logging, old value before new, so every
// destructive action can be justified in the build log.
func (d AttributesDiff) String() string {
	actual := "absent"
	if d.present {
		actual = fmt.Sprintf("%d", d.actual)
	}

	expected, ok := d.version.Expected()
	if !ok {
		return fmt.Sprintf("cache disabled, found %s at %s", actual, d.version.Path())
	}
	return fmt.Sprintf("cache version: found %s, expected %d at %s", actual, expected, d.version.Path())
}
