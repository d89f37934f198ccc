package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/adapters/plugin" //nolint:depguard // Wired in app layer
	"github.com/interactive-instruments/etf-spi/internal/adapters/store"  //nolint:depguard // Wired in app layer
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/engine/definitions"
	"github.com/interactive-instruments/etf-spi/internal/engine/loader"
	"go.trai.ch/zerr"
)

// Store directories below the object store.
const (
	testObjectTypesDir = "testobjecttypes"
	testObjectsDir     = "testobjects"
	tagsDir            = "tags"
	bundlesDir         = "bundles"
	runTemplatesDir    = "runtemplates"
)

// session holds what one command loads: configuration, stores, metadata and drivers.
type session struct {
	cfg      *domain.Config
	logger   ports.Logger
	catalog  *definitions.Catalog
	metadata *loader.Directory
	drivers  *plugin.Loader
	results  *store.Store[*domain.TestTaskResult]

	stopWatch context.CancelFunc
	watchDone chan struct{}
}

// open loads the configuration, scans the metadata and loads the configured
// drivers. With watch set, metadata and suite directories stay watched until close.
func (a *App) open(ctx context.Context, watch bool) (*session, error) {
	cfg, err := a.configLoader.Load(a.workDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.configureLogger(cfg)

	stores := definitions.Stores{
		TestObjectTypes: store.New[*domain.TestObjectType](filepath.Join(cfg.StorePath(), testObjectTypesDir)),
		TestObjects:     store.New[*domain.TestObject](filepath.Join(cfg.StorePath(), testObjectsDir)),
		Tags:            store.New[*domain.Tag](filepath.Join(cfg.StorePath(), tagsDir)),
		Bundles:         store.New[*domain.TranslationTemplateBundle](filepath.Join(cfg.StorePath(), bundlesDir)),
		RunTemplates:    store.New[*domain.TestRunTemplate](filepath.Join(cfg.StorePath(), runTemplatesDir)),
	}
	catalog := definitions.NewCatalog(a.registry, stores, a.logger)

	s := &session{
		cfg:      cfg,
		logger:   a.logger,
		catalog:  catalog,
		metadata: loader.NewDirectory(cfg.ProjectsDir, a.walker, a.hasher, a.logger, catalog.Handlers()...),
		results:  store.New[*domain.TestTaskResult](cfg.ResultsPath()),
	}
	if err := s.metadata.Scan(ctx); err != nil {
		s.metadata.Release()
		return nil, zerr.With(zerr.Wrap(err, "failed to scan metadata"), "dir", cfg.ProjectsDir)
	}

	env := plugin.Env{
		Config:   cfg,
		Registry: a.registry,
		Logger:   a.logger,
		Walker:   a.walker,
		Hasher:   a.hasher,
	}
	if watch && a.newWatcher != nil {
		env.NewWatcher = a.newWatcher
		if err := s.watchMetadata(ctx, a.newWatcher); err != nil {
			s.close()
			return nil, err
		}
	}

	s.drivers = plugin.NewLoader(env, a.components...)
	if err := s.drivers.LoadAll(ctx, cfg.Drivers); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *session) watchMetadata(ctx context.Context, newWatcher func(time.Duration) (ports.Watcher, error)) error {
	root := s.metadata.Root()
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		s.logger.Warn(fmt.Sprintf("metadata directory %s does not exist, changes are not watched", root))
		return nil
	}
	w, err := newWatcher(s.cfg.DebounceWindow)
	if err != nil {
		return zerr.Wrap(err, "failed to create metadata watcher")
	}

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	s.stopWatch, s.watchDone = cancel, done
	go func() {
		defer close(done)
		if err := s.metadata.Watch(watchCtx, w); err != nil {
			s.logger.Error(zerr.With(zerr.Wrap(err, "failed to watch metadata"), "dir", root))
		}
	}()
	return nil
}

// close releases the drivers before the metadata their suites depend on.
func (s *session) close() {
	if s.stopWatch != nil {
		s.stopWatch()
		<-s.watchDone
		s.stopWatch = nil
	}
	if s.drivers != nil {
		s.drivers.ReleaseAll()
	}
	s.metadata.Release()
}

// suites returns the suites of all loaded drivers ordered by id.
func (s *session) suites() []*domain.ExecutableTestSuite {
	var res []*domain.ExecutableTestSuite
	for _, d := range s.drivers.Drivers() {
		res = append(res, d.ExecutableTestSuites()...)
	}
	slices.SortFunc(res, func(a, b *domain.ExecutableTestSuite) int { return a.EID.Compare(b.EID) })
	return res
}

func (s *session) suite(id domain.EID) (*domain.ExecutableTestSuite, bool) {
	for _, d := range s.drivers.Drivers() {
		for _, ets := range d.ExecutableTestSuites() {
			if ets.EID == id {
				return ets, true
			}
		}
	}
	return nil, false
}

// request builds the run request from a template and/or explicit suites and
// a test object. An explicit test object replaces those of the template.
func (s *session) request(opts RunOptions) (*domain.TestRunDto, error) {
	var suiteIDs, objectIDs []domain.EID
	label := opts.Label

	if opts.Template != "" {
		tpl, ok := s.catalog.RunTemplates.Get(domain.NewEID(opts.Template))
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "unknown test run template"), "template", opts.Template)
		}
		suiteIDs = append(suiteIDs, tpl.SuiteIDs...)
		objectIDs = append(objectIDs, tpl.TestObjectIDs...)
		if label == "" {
			label = tpl.Label
		}
	}
	suiteIDs = append(suiteIDs, domain.NewEIDs(opts.Suites)...)
	if opts.Object != "" {
		objectIDs = []domain.EID{domain.NewEID(opts.Object)}
	}

	if len(suiteIDs) == 0 {
		return nil, domain.ErrNoSuitesSpecified
	}
	if len(objectIDs) == 0 {
		return nil, domain.ErrNoTestObjectSpecified
	}

	run := &domain.TestRunDto{EID: domain.RandomEID(), StartedAt: time.Now()}
	labels := make([]string, 0, len(objectIDs))
	for _, oid := range objectIDs {
		obj, ok := s.catalog.TestObjects.Get(oid)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "unknown test object"), "object", oid.String())
		}
		labels = append(labels, obj.Label)
		for _, sid := range suiteIDs {
			ets, ok := s.suite(sid)
			if !ok {
				return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, "unknown executable test suite"), "suite", sid.String())
			}
			run.Tasks = append(run.Tasks, &domain.TestTaskDto{
				EID:        domain.RandomEID(),
				RunID:      run.EID,
				Suite:      ets,
				TestObject: obj,
			})
		}
	}

	run.Label = label
	if run.Label == "" {
		run.Label = "Test run on " + strings.Join(labels, ", ")
	}
	return run, nil
}
