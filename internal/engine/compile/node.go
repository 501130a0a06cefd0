package compile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/store"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the compile-context Graft node.
const NodeID graft.ID = "engine.compile"

func init() {
	graft.Register(graft.Node[*Context]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			fs.MarkerNodeID,
			store.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Context, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			source, err := graft.Dep[ports.TargetGraphSource](ctx)
			if err != nil {
				return nil, err
			}

			marker, err := graft.Dep[ports.DirtyMarker](ctx)
			if err != nil {
				return nil, err
			}

			dataStore, err := graft.Dep[ports.TargetDataStore](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewContext(log, source, marker, dataStore, tracer), nil
		},
	})
}
