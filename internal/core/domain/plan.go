package domain

// ChunkDecision records the rebuild verdict for one chunk.
type ChunkDecision struct {
	Chunk      string      `json:"chunk"`
	Targets    []string    `json:"targets"`
	Status     CacheStatus `json:"status"`
	Rebuild    bool        `json:"rebuild"`
	Reasons    []string    `json:"reasons,omitempty"`
	DirtyFiles int         `json:"dirty_files"`
}

// RebuildPlan is the outcome of the pre-build cache check: the global cache
// verdict plus one decision per chunk and the list of local caches removed
// because their feature is no longer enabled.
type RebuildPlan struct {
	GlobalStatus      CacheStatus     `json:"global_status"`
	GlobalDescription string          `json:"global_description"`
	Chunks            []ChunkDecision `json:"chunks"`
	ClearedCaches     []string        `json:"cleared_caches,omitempty"`
}

// RebuildCount returns how many chunks must be recompiled.
func (p *RebuildPlan) RebuildCount() int {
	n := 0
	for _, c := range p.Chunks {
		if c.Rebuild {
			n++
		}
	}
	return n
}

// DirtyFileCount returns the total number of files scheduled for
// recompilation across all chunks.
func (p *RebuildPlan) DirtyFileCount() int {
	n := 0
	for _, c := range p.Chunks {
		n += c.DirtyFiles
	}
	return n
}
