package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

const NodeID graft.ID = "adapter.store"

func init() {
	graft.Register(graft.Node[ports.TargetDataStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.TargetDataStore, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to determine working directory")
			}
			return Open(filepath.Join(cwd, ".forge"))
		},
	})
}
