package yamldriver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

// Message templates added to results.
const (
	TemplateFingerprint = "TR.yaml.testObjectFingerprint"
	TemplateFileMissing = "TR.yaml.fileMissing"
	TemplateNoResource  = "TR.yaml.noResource"
)

// dirHasher is implemented by hashers that can fingerprint a whole directory.
type dirHasher interface {
	ComputeDirHash(root string) (string, error)
}

type taskBody struct {
	dto    *domain.TestTaskDto
	suite  *domain.ExecutableTestSuite
	hasher ports.Hasher
	logger ports.Logger

	initialized bool
	resource    string
	fingerprint string
}

func newTaskBody(dto *domain.TestTaskDto, suite *domain.ExecutableTestSuite, hasher ports.Hasher, logger ports.Logger) *taskBody {
	return &taskBody{dto: dto, suite: suite, hasher: hasher, logger: logger}
}

// Init checks the resource directory of the test object and fingerprints it.
func (b *taskBody) Init(context.Context) error {
	b.resource = b.dto.TestObject.ResourcePath
	if b.resource == "" {
		b.initialized = true
		return nil
	}
	info, err := os.Stat(b.resource)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "resource", b.resource)
	}
	if !info.IsDir() {
		return zerr.With(zerr.Wrap(domain.ErrResourceNotDirectory, "failed to initialize test task"), "resource", b.resource)
	}

	if h, ok := b.hasher.(dirHasher); ok {
		fp, err := h.ComputeDirHash(b.resource)
		if err != nil {
			return err
		}
		b.fingerprint = fp
	}
	b.initialized = true
	return nil
}

// Run reports one result per suite item. Assertions end with their expected
// status unless a referenced file is missing, and every parent ends with the
// most severe status of its children.
func (b *taskBody) Run(ctx context.Context, c ports.ResultCollector) error {
	if !b.initialized {
		return zerr.With(zerr.Wrap(domain.ErrInitialization, "run before init"), "suite", b.suite.EID.String())
	}
	taskID, err := c.Start(domain.LevelTask, b.suite.EID)
	if err != nil {
		return err
	}
	if b.fingerprint != "" {
		if err := c.AddMessage(TemplateFingerprint, map[string]string{"fingerprint": b.fingerprint}); err != nil {
			return err
		}
	}

	status := domain.StatusUndefined
	for i := range b.suite.Modules {
		s, err := b.runModule(ctx, c, &b.suite.Modules[i])
		if err != nil {
			return err
		}
		status = worst(status, s)
	}
	return c.End(taskID, finalStatus(status))
}

func (b *taskBody) runModule(ctx context.Context, c ports.ResultCollector, m *domain.TestModule) (domain.ResultStatus, error) {
	id, err := c.Start(domain.LevelModule, m.EID)
	if err != nil {
		return 0, err
	}
	status := domain.StatusUndefined
	for i := range m.Cases {
		s, err := b.runCase(ctx, c, &m.Cases[i])
		if err != nil {
			return 0, err
		}
		status = worst(status, s)
	}
	status = finalStatus(status)
	return status, c.End(id, status)
}

func (b *taskBody) runCase(ctx context.Context, c ports.ResultCollector, tc *domain.TestCase) (domain.ResultStatus, error) {
	id, err := c.Start(domain.LevelCase, tc.EID)
	if err != nil {
		return 0, err
	}
	status := domain.StatusUndefined
	for i := range tc.Steps {
		s, err := b.runStep(ctx, c, &tc.Steps[i])
		if err != nil {
			return 0, err
		}
		status = worst(status, s)
	}
	status = finalStatus(status)
	return status, c.End(id, status)
}

func (b *taskBody) runStep(ctx context.Context, c ports.ResultCollector, st *domain.TestStep) (domain.ResultStatus, error) {
	id, err := c.Start(domain.LevelStep, st.EID)
	if err != nil {
		return 0, err
	}
	status := domain.StatusUndefined
	for i := range st.Assertions {
		if err := c.CheckCancel(ctx); err != nil {
			return 0, zerr.With(zerr.Wrap(err, "assertion not executed"), "suite", b.suite.EID.String())
		}
		s, err := b.runAssertion(c, &st.Assertions[i])
		if err != nil {
			return 0, err
		}
		status = worst(status, s)
	}
	status = finalStatus(status)
	return status, c.End(id, status)
}

func (b *taskBody) runAssertion(c ports.ResultCollector, a *domain.TestAssertion) (domain.ResultStatus, error) {
	id, err := c.Start(domain.LevelAssertion, a.EID)
	if err != nil {
		return 0, err
	}

	status := a.Expected
	if a.File != "" {
		switch {
		case b.resource == "":
			status = domain.StatusFailed
			err = c.AddMessage(TemplateNoResource, map[string]string{"file": a.File})
		case !fileExists(filepath.Join(b.resource, a.File)):
			status = domain.StatusFailed
			err = c.AddMessage(TemplateFileMissing, map[string]string{"file": a.File})
		}
		if err != nil {
			return 0, err
		}
	}
	if status == domain.StatusFailed {
		b.logger.Debug(fmt.Sprintf("assertion %s of %s failed", a.EID, b.suite.Label))
	}
	return status, c.End(id, status)
}

// Cancel does nothing; Run stops at the next assertion once the task is canceled.
func (b *taskBody) Cancel() error { return nil }

// Release does nothing; the body holds no resources.
func (b *taskBody) Release() error { return nil }

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var severity = map[domain.ResultStatus]int{
	domain.StatusUndefined:     0,
	domain.StatusSkipped:       1,
	domain.StatusNotApplicable: 2,
	domain.StatusInfo:          3,
	domain.StatusPassed:        4,
	domain.StatusWarning:       5,
	domain.StatusFailed:        6,
	domain.StatusInternalError: 7,
}

func worst(a, b domain.ResultStatus) domain.ResultStatus {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

// finalStatus turns the status of a node without children into PASSED.
func finalStatus(s domain.ResultStatus) domain.ResultStatus {
	if s == domain.StatusUndefined {
		return domain.StatusPassed
	}
	return s
}
