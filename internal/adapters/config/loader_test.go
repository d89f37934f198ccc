package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/adapters/config"
	"github.com/interactive-instruments/etf-spi/internal/adapters/logger"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	return config.NewLoader(log), log
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), domain.FilePerm))
}

func TestLoader_Defaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "")
	l, _ := newLoader(t)

	cfg, err := l.Load(root)
	require.NoError(t, err)

	assert.Equal(t, &domain.Config{
		Root:           root,
		ProjectsDir:    filepath.Join(root, "projects"),
		DriversDir:     filepath.Join(root, "testdrivers"),
		DataDir:        filepath.Join(root, ".etf"),
		Drivers:        []string{"yaml"},
		LookupMaxTries: domain.DefaultLookupMaxTries,
		SuiteLoadDelay: domain.DefaultSuiteLoadDelay,
		DebounceWindow: domain.DefaultDebounceWindow,
		LogLevel:       "info",
	}, cfg)
	assert.Equal(t, filepath.Join(root, ".etf", "results"), cfg.ResultsPath())
	assert.Equal(t, filepath.Join(root, "testdrivers", "yaml"), cfg.DriverDir("yaml"))
}

func TestLoader_AllValues(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
projectsDir: defs
driversDir: /opt/etf/drivers
dataDir: ../data
drivers: [yaml, " yaml", sql]
lookup:
  maxTries: 3
loader:
  suiteDelay: 0s
  debounce: 200ms
run:
  startDelay: 1s
  parallelism: 2
log:
  json: true
  level: DEBUG
`)
	l, _ := newLoader(t)

	cfg, err := l.Load(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "defs"), cfg.ProjectsDir)
	assert.Equal(t, "/opt/etf/drivers", cfg.DriversDir)
	assert.Equal(t, filepath.Join(filepath.Dir(root), "data"), cfg.DataDir)
	assert.Equal(t, []string{"yaml", "sql"}, cfg.Drivers)
	assert.Equal(t, 3, cfg.LookupMaxTries)
	assert.Equal(t, time.Duration(0), cfg.SuiteLoadDelay)
	assert.Equal(t, 200*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, time.Second, cfg.RunStartDelay)
	assert.Equal(t, 2, cfg.Parallelism)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoader_DiscoversParentDirectory(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "root: workspace\n")
	nested := filepath.Join(root, "projects", "inspire")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))
	l, _ := newLoader(t)

	found, err := l.DiscoverRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)

	cfg, err := l.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "workspace"), cfg.Root)
	assert.Equal(t, filepath.Join(root, "workspace", "projects"), cfg.ProjectsDir)
}

func TestLoader_NotFound(t *testing.T) {
	l, _ := newLoader(t)

	_, err := l.Load(t.TempDir())
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
	_, err = l.DiscoverRoot(t.TempDir())
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_ZeroDebounceWarns(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "loader:\n  debounce: 0s\n")
	l, log := newLoader(t)
	log.EXPECT().Warn(gomock.Any())

	cfg, err := l.Load(root)
	require.NoError(t, err)
	assert.Zero(t, cfg.DebounceWindow)
}

func TestLoader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "malformed yaml", content: "drivers: [", wantErr: nil},
		{name: "bad duration", content: "run:\n  startDelay: soon\n", wantErr: domain.ErrConfiguration},
		{name: "negative duration", content: "loader:\n  suiteDelay: -1s\n", wantErr: domain.ErrConfiguration},
		{name: "zero max tries", content: "lookup:\n  maxTries: 0\n", wantErr: domain.ErrConfiguration},
		{name: "negative parallelism", content: "run:\n  parallelism: -1\n", wantErr: domain.ErrConfiguration},
		{name: "unknown log level", content: "log:\n  level: verbose\n", wantErr: domain.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.content)
			l, _ := newLoader(t)

			_, err := l.Load(root)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func envLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoader_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "dataDir: data\nrun:\n  parallelism: 2\nlog:\n  level: info\n")
	l, _ := newLoader(t)
	l.WithEnv(envLookup(map[string]string{
		config.EnvDataDir:     "/var/lib/etf",
		config.EnvParallelism: "8",
		logger.EnvLevel:       "DEBUG",
		logger.EnvJSON:        "1",
	}))

	cfg, err := l.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/etf", cfg.DataDir)
	assert.Equal(t, 8, cfg.Parallelism)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
}

func TestLoader_EnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "parallelism not a number", env: map[string]string{config.EnvParallelism: "many"}},
		{name: "negative parallelism", env: map[string]string{config.EnvParallelism: "-3"}},
		{name: "json not a boolean", env: map[string]string{logger.EnvJSON: "sometimes"}},
		{name: "unknown level", env: map[string]string{logger.EnvLevel: "chatty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, "")
			l, _ := newLoader(t)

			_, err := l.WithEnv(envLookup(tt.env)).Load(root)
			require.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}
