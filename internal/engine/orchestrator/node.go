package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/imprint/internal/adapters/env"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/imprint/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/imprint/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/imprint/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/imprint/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/imprint/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.HasherNodeID,
			env.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			environment, err := graft.Dep[ports.Environment](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(executor, hasher, environment, log, telemetry), nil
		},
	})
}
