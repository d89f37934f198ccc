package lifecycle

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

// Collector implements ports.ResultCollector for one task. It builds the
// result tree on a stack of open nodes and hands the finished tree to the
// persistor when the task level node ends.
type Collector struct {
	task      *domain.TestTaskDto
	persistor ports.ResultPersistor
	logger    ports.Logger
	progress  *Progress
	now       func() time.Time

	mu          sync.Mutex
	root        *domain.ResultNode
	stack       []*domain.ResultNode
	errs        []string
	internalErr bool
	result      *domain.TestTaskResult
	cancelCheck func(ctx context.Context) error
}

var _ ports.ResultCollector = (*Collector)(nil)

// NewCollector creates a collector for the given task. The persistor may be nil.
func NewCollector(task *domain.TestTaskDto, persistor ports.ResultPersistor, logger ports.Logger) *Collector {
	return &Collector{
		task:      task,
		persistor: persistor,
		logger:    logger,
		progress:  NewProgress(stepsOf(task)),
		now:       time.Now,
	}
}

// Progress returns the step counter advanced by ended assertions.
func (c *Collector) Progress() *Progress {
	return c.progress
}

// Start implements ports.ResultCollector.
func (c *Collector) Start(level domain.ResultLevel, resultedFrom domain.EID) (domain.EID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	depth := len(c.stack)
	if level > domain.LevelAssertion || int(level) != depth || (level == domain.LevelTask && c.root != nil) {
		return domain.EID{}, c.protocolError("unexpected start", level)
	}

	node := &domain.ResultNode{
		EID:          domain.RandomEID(),
		ResultedFrom: resultedFrom,
		Level:        level,
		StartedAt:    c.now(),
	}
	if depth == 0 {
		c.root = node
	} else {
		parent := c.stack[depth-1]
		parent.Children = append(parent.Children, node)
	}
	c.stack = append(c.stack, node)
	return node.EID, nil
}

// End implements ports.ResultCollector.
func (c *Collector) End(id domain.EID, status domain.ResultStatus) error {
	c.mu.Lock()
	if len(c.stack) == 0 {
		c.mu.Unlock()
		return zerr.With(zerr.Wrap(domain.ErrResultProtocol, "no open result"), "id", id.String())
	}
	top := c.stack[len(c.stack)-1]
	if top.EID != id {
		c.mu.Unlock()
		return zerr.With(zerr.With(
			zerr.Wrap(domain.ErrResultProtocol, "result is not the innermost open one"),
			"id", id.String()),
			"open", top.EID.String())
	}

	top.Status = status
	top.Duration = c.now().Sub(top.StartedAt)
	c.stack = c.stack[:len(c.stack)-1]

	switch top.Level {
	case domain.LevelAssertion:
		c.progress.Advance()
	case domain.LevelTask:
		c.result = c.buildResultLocked()
	}
	result := c.result
	done := top.Level == domain.LevelTask
	c.mu.Unlock()

	if done {
		return c.persist(result)
	}
	return nil
}

// AddMessage implements ports.ResultCollector.
func (c *Collector) AddMessage(templateID string, args map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrResultProtocol, "message outside of a result"), "template", templateID)
	}
	top := c.stack[len(c.stack)-1]
	top.Messages = append(top.Messages, domain.Message{TemplateID: templateID, Arguments: args})
	return nil
}

// AddAttachment implements ports.ResultCollector.
func (c *Collector) AddAttachment(label, mimeType string, size int) (domain.EID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) == 0 {
		return domain.EID{}, zerr.With(zerr.Wrap(domain.ErrResultProtocol, "attachment outside of a result"), "label", label)
	}
	a := domain.Attachment{EID: domain.RandomEID(), Label: label, MimeType: mimeType, Size: size}
	top := c.stack[len(c.stack)-1]
	top.Attachments = append(top.Attachments, a)
	return a.EID, nil
}

// ReportInternalError implements ports.ResultCollector. Every open node and
// the task node are marked with domain.StatusInternalError. A result that was
// already persisted is replaced so that the late error is kept.
func (c *Collector) ReportInternalError(err error) {
	c.mu.Lock()
	c.internalErr = true
	c.errs = append(c.errs, err.Error())
	now := c.now()
	if c.root == nil {
		c.root = &domain.ResultNode{
			EID:          domain.RandomEID(),
			ResultedFrom: c.suiteID(),
			Level:        domain.LevelTask,
			StartedAt:    now,
		}
	}
	c.root.Status = domain.StatusInternalError
	for i := len(c.stack) - 1; i >= 0; i-- {
		n := c.stack[i]
		n.Status = domain.StatusInternalError
		n.Duration = now.Sub(n.StartedAt)
	}
	c.stack = nil
	prev := c.result
	c.result = c.buildResultLocked()
	if prev != nil {
		c.result.EID = prev.EID
	}
	result := c.result
	c.mu.Unlock()

	if c.persistor == nil {
		return
	}
	if c.persistor.Persisted() {
		if uerr := c.persistor.UpdateResult(result); uerr != nil {
			c.logger.Error(uerr)
		}
		return
	}
	if perr := c.persist(result); perr != nil {
		c.logger.Error(perr)
	}
}

// CheckCancel implements ports.ResultCollector. It asks the owning task;
// a collector without a task only checks ctx.
func (c *Collector) CheckCancel(ctx context.Context) error {
	c.mu.Lock()
	check := c.cancelCheck
	c.mu.Unlock()
	if check != nil {
		return check(ctx)
	}
	if ctx.Err() != nil {
		return zerr.With(zerr.Wrap(domain.ErrInterrupted, "test task interrupted"), "task", c.task.EID.String())
	}
	return nil
}

// InternalErrorReported implements ports.ResultCollector.
func (c *Collector) InternalErrorReported() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.internalErr
}

// Result returns the finished result, or nil while the task level is still open.
func (c *Collector) Result() *domain.TestTaskResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Collector) persist(result *domain.TestTaskResult) error {
	if c.persistor == nil {
		return nil
	}
	return c.persistor.SetResult(result)
}

func (c *Collector) buildResultLocked() *domain.TestTaskResult {
	r := &domain.TestTaskResult{
		EID:     domain.RandomEID(),
		TaskID:  c.task.EID,
		RunID:   c.task.RunID,
		SuiteID: c.suiteID(),
		Root:    c.root,
		Errors:  slices.Clone(c.errs),
	}
	if c.task.TestObject != nil {
		r.TestObjectID = c.task.TestObject.EID
	}
	return r
}

func (c *Collector) suiteID() domain.EID {
	if c.task.Suite == nil {
		return domain.EID{}
	}
	return c.task.Suite.EID
}

func (c *Collector) protocolError(msg string, level domain.ResultLevel) error {
	return zerr.With(zerr.With(
		zerr.Wrap(domain.ErrResultProtocol, msg),
		"level", level.String()),
		"depth", len(c.stack))
}
