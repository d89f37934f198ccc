package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/interactive-instruments/etf-spi/internal/adapters/logger"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			// Environment values win over etf.yaml, matching the logger node.
			return NewLoader(log).WithEnv(os.LookupEnv), nil
		},
	})
}
