// Package config loads the engine configuration from etf.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/adapters/logger"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// DefaultDrivers are loaded when etf.yaml does not list any.
var DefaultDrivers = []string{"yaml"}

var logLevels = []string{"debug", "info", "warn", "error"}

// Environment variables overriding values of etf.yaml.
const (
	EnvDataDir     = "ETF_DATA_DIR"
	EnvParallelism = "ETF_PARALLELISM"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger

	lookupEnv func(string) (string, bool)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// WithEnv makes values from lookup override the file: EnvDataDir,
// EnvParallelism, logger.EnvLevel and logger.EnvJSON.
func (l *Loader) WithEnv(lookup func(string) (string, bool)) *Loader {
	l.lookupEnv = lookup
	return l
}

// DiscoverRoot walks up from cwd and returns the first directory containing
// etf.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	path, err := findConfigFile(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// Load finds etf.yaml starting at cwd and returns the configuration with
// defaults applied. Relative directories are resolved against the root.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path, err := findConfigFile(cwd)
	if err != nil {
		return nil, err
	}

	var file File
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if err := l.applyEnv(&file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg, err := l.resolve(path, &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func (l *Loader) resolve(path string, file *File) (*domain.Config, error) {
	root := resolveDir(filepath.Dir(path), file.Root, ".")
	cfg := &domain.Config{
		Root:           root,
		ProjectsDir:    resolveDir(root, file.ProjectsDir, domain.ProjectsDirName),
		DriversDir:     resolveDir(root, file.DriversDir, domain.DriversDirName),
		DataDir:        resolveDir(root, file.DataDir, domain.DataDirName),
		Drivers:        dedupe(file.Drivers),
		LookupMaxTries: domain.DefaultLookupMaxTries,
		SuiteLoadDelay: domain.DefaultSuiteLoadDelay,
		DebounceWindow: domain.DefaultDebounceWindow,
		LogJSON:        file.Log.JSON,
		LogLevel:       strings.ToLower(file.Log.Level),
	}
	if len(cfg.Drivers) == 0 {
		cfg.Drivers = slices.Clone(DefaultDrivers)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "unknown log level"), "log.level", file.Log.Level)
	}

	if v := file.Lookup.MaxTries; v != nil {
		if *v < 1 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "lookup.maxTries must be positive"), "lookup.maxTries", *v)
		}
		cfg.LookupMaxTries = *v
	}
	if v := file.Run.Parallelism; v != nil {
		if *v < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "run.parallelism must not be negative"), "run.parallelism", *v)
		}
		cfg.Parallelism = *v
	}

	durations := []struct {
		key    string
		value  *string
		target *time.Duration
	}{
		{"loader.suiteDelay", file.Loader.SuiteDelay, &cfg.SuiteLoadDelay},
		{"loader.debounce", file.Loader.Debounce, &cfg.DebounceWindow},
		{"run.startDelay", file.Run.StartDelay, &cfg.RunStartDelay},
	}
	for _, d := range durations {
		if d.value == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.value)
		if err != nil || parsed < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, fmt.Sprintf("%s must be a non-negative duration", d.key)), d.key, *d.value)
		}
		*d.target = parsed
	}

	if cfg.DebounceWindow == 0 {
		l.Logger.Warn("loader.debounce is 0, every file event triggers a reload")
	}
	return cfg, nil
}

// applyEnv copies set environment values into file before it is resolved,
// so they pass the same validation as values from etf.yaml.
func (l *Loader) applyEnv(file *File) error {
	if l.lookupEnv == nil {
		return nil
	}
	if v, ok := l.lookupEnv(EnvDataDir); ok && v != "" {
		file.DataDir = v
	}
	if v, ok := l.lookupEnv(logger.EnvLevel); ok && v != "" {
		file.Log.Level = v
	}
	if v, ok := l.lookupEnv(logger.EnvJSON); ok && v != "" {
		enable, err := strconv.ParseBool(v)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrConfiguration, "invalid boolean"), logger.EnvJSON, v)
		}
		file.Log.JSON = enable
	}
	if v, ok := l.lookupEnv(EnvParallelism); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrConfiguration, "invalid number"), EnvParallelism, v)
		}
		file.Run.Parallelism = &n
	}
	return nil
}

func findConfigFile(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no "+domain.ConfigFileName+" above working directory"), "cwd", cwd)
		}
		dir = parent
	}
}

func resolveDir(base, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(base, configured))
}

func dedupe(values []string) []string {
	var res []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into target.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is found by walking up from cwd
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
