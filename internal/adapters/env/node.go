package env

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/imprint/internal/core/ports"
)

// NodeID is the graft node ID for the process environment.
const NodeID graft.ID = "adapter.env"

func init() {
	graft.Register(graft.Node[ports.Environment]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Environment, error) {
			return OS{}, nil
		},
	})
}
