package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/adapters/fs"
	"github.com/interactive-instruments/etf-spi/internal/app"
	"github.com/interactive-instruments/etf-spi/internal/core/ports/mocks"
	"github.com/interactive-instruments/etf-spi/internal/engine/registry"
	"github.com/interactive-instruments/etf-spi/internal/engine/scheduler"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestApp(t *testing.T) (*app.App, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	walker := fs.NewWalker()
	application := app.New(loader, logger, registry.New(logger), walker, fs.NewHasher(walker), nil, scheduler.NewScheduler(logger))
	return application, loader, logger
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	application, _, logger := newTestApp(t)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: logger}, func() {}, nil
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "etf version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	application, loader, logger := newTestApp(t)
	dir := t.TempDir()
	application.WithWorkDir(dir)

	loadErr := errors.New("load failed")
	loader.EXPECT().Load(dir).Return(nil, loadErr)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, loadErr)
	})

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: logger}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"suites"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
