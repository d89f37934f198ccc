// Package yamldriver is the compiled-in test driver whose executable test
// suites are YAML files with declared assertion outcomes.
package yamldriver

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/adapters/plugin"
	"github.com/interactive-instruments/etf-spi/internal/build"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/engine/definitions"
	"github.com/interactive-instruments/etf-spi/internal/engine/loader"
	"go.trai.ch/zerr"
)

// ID is the component id of the driver.
const ID = "yaml"

func init() {
	plugin.Register(plugin.Component{ID: ID, EntryPoints: []plugin.EntryPoint{New}})
}

// Driver owns the suites below <driversDir>/yaml.
type Driver struct {
	env    plugin.Env
	suites *loader.Factory[*domain.ExecutableTestSuite]
	dir    *loader.Directory

	mu        sync.Mutex
	stopWatch context.CancelFunc
	watchDone chan struct{}
}

var _ ports.TestDriver = (*Driver)(nil)

// New creates the driver. It is the entry point of the component.
func New(env plugin.Env) (ports.TestDriver, error) {
	if env.Config == nil || env.Registry == nil || env.Logger == nil || env.Walker == nil || env.Hasher == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "incomplete driver environment"), "component", ID)
	}

	suites := loader.NewFactory(definitions.ExecutableTestSuiteKind(ID), env.Registry, nil, env.Logger)
	dir := loader.NewDirectory(env.Config.DriverDir(ID), env.Walker, env.Hasher, env.Logger, suites).
		WithDelay(env.Config.SuiteLoadDelay)

	return &Driver{env: env, suites: suites, dir: dir}, nil
}

// Info implements ports.TestDriver.
func (d *Driver) Info() domain.ComponentInfo {
	return domain.ComponentInfo{
		ID:      ID,
		Name:    "YAML test driver",
		Version: build.Version,
		Vendor:  "interactive instruments",
	}
}

// Init scans the definition directory and, if a watcher factory is
// configured, keeps watching it until Release.
func (d *Driver) Init(ctx context.Context) error {
	if err := d.dir.Scan(ctx); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to scan suite directory"), "dir", d.dir.Root())
	}
	if d.env.NewWatcher == nil {
		return nil
	}
	if info, err := os.Stat(d.dir.Root()); err != nil || !info.IsDir() {
		d.env.Logger.Warn(fmt.Sprintf("suite directory %s does not exist, changes are not watched", d.dir.Root()))
		return nil
	}

	w, err := d.env.NewWatcher(d.env.Config.DebounceWindow)
	if err != nil {
		return zerr.Wrap(err, "failed to create suite watcher")
	}

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	d.mu.Lock()
	d.stopWatch, d.watchDone = cancel, done
	d.mu.Unlock()

	started := make(chan error, 1)
	go func() {
		defer close(done)
		// Watch only fails in Start, which is reported through started.
		_ = d.dir.Watch(watchCtx, &startNotifier{Watcher: w, started: started})
	}()
	if err := <-started; err != nil {
		cancel()
		<-done
		return zerr.With(zerr.Wrap(err, "failed to watch suite directory"), "dir", d.dir.Root())
	}
	return nil
}

// ExecutableTestSuites implements ports.TestDriver.
func (d *Driver) ExecutableTestSuites() []*domain.ExecutableTestSuite {
	return d.suites.Items()
}

// LookupExecutableTestSuites adds the requested suites this driver owns
// together with their dependencies on suites of the same driver.
func (d *Driver) LookupExecutableTestSuites(req ports.SuiteLookupRequest) {
	seen := make(map[domain.EID]bool)
	var found []*domain.ExecutableTestSuite

	queue := req.Unknown()
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true

		ets, ok := d.suites.Get(id)
		if !ok {
			continue
		}
		found = append(found, ets)
		for _, ref := range ets.Dependencies {
			if ets.DependencyOwner(ref) == ID {
				queue = append(queue, ref.ID)
			}
		}
	}

	if len(found) > 0 {
		req.AddKnown(found...)
	}
}

// CreateTestTask implements ports.TestDriver.
func (d *Driver) CreateTestTask(dto *domain.TestTaskDto) (ports.TaskBody, error) {
	if dto.Suite == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoSuitesSpecified, "failed to create test task"), "task", dto.EID.String())
	}
	ets, ok := d.suites.Get(dto.Suite.EID)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "suite is not owned by the yaml driver"), "suite", dto.Suite.EID.String())
	}
	if dto.TestObject == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoTestObjectSpecified, "failed to create test task"), "suite", ets.EID.String())
	}
	return newTaskBody(dto, ets, d.env.Hasher, d.env.Logger), nil
}

// Release stops watching and releases all suites.
func (d *Driver) Release() {
	d.mu.Lock()
	stop, done := d.stopWatch, d.watchDone
	d.stopWatch, d.watchDone = nil, nil
	d.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
	d.dir.Release()
}

// startNotifier reports the result of the first Start call.
type startNotifier struct {
	ports.Watcher
	started chan<- error
}

func (s *startNotifier) Start(ctx context.Context, root string) error {
	err := s.Watcher.Start(ctx, root)
	s.started <- err
	return err
}
