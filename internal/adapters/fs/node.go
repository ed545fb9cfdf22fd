package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/imprint/internal/adapters/logger"
	"go.trai.ch/imprint/internal/core/ports"
)

// HasherNodeID is the graft node ID for the fingerprint hasher.
const HasherNodeID graft.ID = "adapter.fs.hasher"

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(log), nil
		},
	})
}
