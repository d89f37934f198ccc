package ports

import "github.com/interactive-instruments/etf-spi/internal/core/domain"

// ConfigLoader defines the interface for loading the engine configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds etf.yaml starting at cwd and returns the configuration with defaults applied.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the directory containing etf.yaml.
	DiscoverRoot(cwd string) (string, error)
}
