// Package app implements the application layer for etf.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/interactive-instruments/etf-spi/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"github.com/interactive-instruments/etf-spi/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"github.com/interactive-instruments/etf-spi/internal/adapters/plugin"    //nolint:depguard // Wired in app layer
	"github.com/interactive-instruments/etf-spi/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/interactive-instruments/etf-spi/internal/adapters/tui"       //nolint:depguard // Wired in app layer
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/engine/lifecycle"
	"github.com/interactive-instruments/etf-spi/internal/engine/lookup"
	"github.com/interactive-instruments/etf-spi/internal/engine/manager"
	"github.com/interactive-instruments/etf-spi/internal/engine/scheduler"
	"go.opentelemetry.io/otel"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	registry     ports.ItemRegistry
	walker       ports.Walker
	hasher       ports.Hasher
	newWatcher   func(window time.Duration) (ports.Watcher, error)
	scheduler    *scheduler.Scheduler

	components []plugin.Component
	workDir    string
	stdout     io.Writer
	stderr     io.Writer
	teaOptions []tea.ProgramOption
}

// New creates a new App instance. newWatcher may be nil if nothing is watched.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	registry ports.ItemRegistry,
	walker ports.Walker,
	hasher ports.Hasher,
	newWatcher func(window time.Duration) (ports.Watcher, error),
	sched *scheduler.Scheduler,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		registry:     registry,
		walker:       walker,
		hasher:       hasher,
		newWatcher:   newWatcher,
		scheduler:    sched,
		workDir:      ".",
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithComponents restricts the loadable drivers to the given components.
// By default every registered component can be loaded.
func (a *App) WithComponents(components ...plugin.Component) *App {
	a.components = components
	return a
}

// WithWorkDir sets the directory the configuration search starts at.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithOutput sets the streams of the progress renderer and the summary.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithTeaOptions adds bubbletea program options used by the interactive view.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Suites are the ids of the executable test suites to run.
	Suites []string
	// Object is the id of the test object. It replaces the template's objects.
	Object string
	// Template is the id of a test run template.
	Template string
	Label    string
	// Watch keeps the definition directories watched after the run until ctx is done.
	Watch bool
	// Output selects the progress view: "tui", "linear" or empty for auto detection.
	Output string
}

// Run assembles one test run and executes it. Progress is shown in an
// interactive view on terminals and as plain lines otherwise.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	// 1. Load configuration, metadata and drivers
	s, err := a.open(ctx, opts.Watch)
	if err != nil {
		return err
	}
	defer s.close()

	req, err := s.request(opts)
	if err != nil {
		return zerr.Wrap(err, "failed to create test run request")
	}

	// 2. Initialize renderer and telemetry
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	var run *lifecycle.Run
	progress := func() (int, int, error) {
		if run == nil {
			return 0, 0, nil
		}
		return run.Progress()
	}
	renderer := a.newRenderer(opts.Output, progress, cancelRun)
	tp := telemetry.NewTracerProvider(renderer)
	otel.SetTracerProvider(tp)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer("etf").WithRenderer(renderer)

	// 3. Assemble the run
	resolver := lookup.NewResolver(s.drivers, a.logger, s.cfg.LookupMaxTries)
	mgr := manager.New(s.drivers, resolver, s.results, a.logger, tracer,
		manager.WithStartDelay(s.cfg.RunStartDelay))
	run, err = mgr.CreateTestRun(ctx, req)
	if err != nil {
		return err
	}

	// 4. Run renderer and scheduler concurrently
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})
	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()
		return a.scheduler.Execute(gctx, []*lifecycle.Run{run}, s.cfg.Parallelism)
	})
	execErr := g.Wait()

	failed := writeSummary(a.stdout, run)
	if execErr != nil {
		return execErr
	}

	if opts.Watch {
		a.logger.Info("Watching definition files, press Ctrl+C to stop")
		<-ctx.Done()
	}
	if failed {
		return zerr.With(zerr.Wrap(domain.ErrTestsFailed, "test run finished"), "run", run.Label())
	}
	return nil
}

// newRenderer picks the progress view for the output choice. Both views read
// the run's progress; the interactive one cancels the run on interrupt.
func (a *App) newRenderer(choice string, progress ports.ProgressFunc, interrupt func()) ports.Renderer {
	mode := detector.ResolveMode(detector.DetectEnvironment(a.stderr), choice)
	if mode == detector.ModeTUI {
		model := tui.NewModel(progress).WithInterrupt(interrupt)
		optsTea := append([]tea.ProgramOption{tea.WithOutput(a.stderr)}, a.teaOptions...)
		return tui.NewRenderer(&model, optsTea...)
	}
	return linear.NewRenderer(a.stdout, a.stderr).WithProgress(progress)
}

// Suites returns the executable test suites of all configured drivers.
func (a *App) Suites(ctx context.Context) ([]*domain.ExecutableTestSuite, error) {
	s, err := a.open(ctx, false)
	if err != nil {
		return nil, err
	}
	defer s.close()
	return s.suites(), nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Store   bool
	Results bool
}

// Clean removes the object store and the stored results.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cfg, err := a.configLoader.Load(a.workDir)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Store {
		remove(cfg.StorePath(), "object store")
	}
	if options.Results {
		remove(cfg.ResultsPath(), "test results")
	}
	return errs
}

// configurableLogger is implemented by loggers whose format follows the configuration.
type configurableLogger interface {
	SetJSON(enable bool)
	SetLevel(name string)
}

func (a *App) configureLogger(cfg *domain.Config) {
	if l, ok := a.logger.(configurableLogger); ok {
		l.SetJSON(cfg.LogJSON)
		l.SetLevel(cfg.LogLevel)
	}
}
