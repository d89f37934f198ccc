// Package wiring registers all Graft nodes and compiled-in test drivers for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/interactive-instruments/etf-spi/internal/adapters/config"
	_ "github.com/interactive-instruments/etf-spi/internal/adapters/fs"
	_ "github.com/interactive-instruments/etf-spi/internal/adapters/logger"
	_ "github.com/interactive-instruments/etf-spi/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "github.com/interactive-instruments/etf-spi/internal/app"
	_ "github.com/interactive-instruments/etf-spi/internal/engine/registry"
	_ "github.com/interactive-instruments/etf-spi/internal/engine/scheduler"
	// Register test driver components.
	_ "github.com/interactive-instruments/etf-spi/internal/drivers/yamldriver"
)
