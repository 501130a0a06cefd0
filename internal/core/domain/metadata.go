package domain

import (
	"encoding/json"
	"slices"

	"go.trai.ch/zerr"
)

// ChunkMetadata is the compiler-invocation fingerprint persisted next to each
// chunk member's cache. A build whose metadata differs from the persisted copy
// must rebuild the whole chunk regardless of individual cache versions.
type ChunkMetadata struct {
	LanguageVersion string   `json:"language_version"`
	APIVersion      string   `json:"api_version"`
	Platform        string   `json:"platform,omitempty"`
	ExtraFlags      []string `json:"extra_flags,omitempty"`
}

// Serialize renders the metadata as a canonical byte blob. Flags are sorted so
// the same invocation always serializes identically; the persisted file is
// compared byte-for-byte against this.
func (m ChunkMetadata) Serialize() ([]byte, error) {
	if len(m.ExtraFlags) > 0 {
		flags := slices.Clone(m.ExtraFlags)
		slices.Sort(flags)
		m.ExtraFlags = flags
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to serialize chunk metadata")
	}
	return append(data, '\n'), nil
}
