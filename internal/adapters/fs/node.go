package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

const (
	WalkerNodeID graft.ID = "adapter.fs.walker"
	MarkerNodeID graft.ID = "adapter.fs.marker"
)

func init() {
	// Walker Node (concrete implementation needed by the Recorder)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Dirty-marker Node
	graft.Register(graft.Node[ports.DirtyMarker]{
		ID:        MarkerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.DirtyMarker, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewRecorder(walker), nil
		},
	})
}
