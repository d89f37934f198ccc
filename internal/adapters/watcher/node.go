package watcher

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"github.com/interactive-instruments/etf-spi/internal/adapters/logger"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher"

// Factory creates a watcher with the given debounce window. Every directory
// that is watched needs its own watcher.
type Factory func(window time.Duration) (ports.Watcher, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func(window time.Duration) (ports.Watcher, error) {
				return NewWatcher(log, window)
			}, nil
		},
	})
}
