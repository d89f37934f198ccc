package domain

import (
	"path/filepath"
	"time"
)

const (
	// DefaultLookupMaxTries bounds the rounds of the cross driver suite lookup.
	DefaultLookupMaxTries = 8

	// DefaultSuiteLoadDelay is the time suite loaders wait before their first scan.
	// The app scans metadata before it loads drivers, so no wait is needed by default.
	DefaultSuiteLoadDelay time.Duration = 0

	// DefaultDebounceWindow coalesces bursts of file system events.
	DefaultDebounceWindow = 50 * time.Millisecond

	// DefaultMaxSteps is the step budget of a task that does not report its own.
	DefaultMaxSteps = 100
)

// Config is the resolved engine configuration.
type Config struct {
	// Root is the directory containing the configuration file.
	Root string
	// ProjectsDir holds test objects, tags, translation bundles and run templates.
	ProjectsDir string
	// DriversDir holds one sub directory per test driver.
	DriversDir string
	// DataDir holds the object and result stores.
	DataDir string
	// Drivers lists the ids of the compiled-in drivers to load.
	Drivers []string

	LookupMaxTries int
	SuiteLoadDelay time.Duration
	DebounceWindow time.Duration
	RunStartDelay  time.Duration
	Parallelism    int

	LogJSON  bool
	LogLevel string
}

// StorePath returns the directory of the object store.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, StoreDirName)
}

// ResultsPath returns the directory of the result store.
func (c *Config) ResultsPath() string {
	return filepath.Join(c.DataDir, ResultsDirName)
}

// DriverDir returns the definition directory of the given driver.
func (c *Config) DriverDir(driverID string) string {
	return filepath.Join(c.DriversDir, driverID)
}
