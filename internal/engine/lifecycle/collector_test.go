package lifecycle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/core/ports/mocks"
	"github.com/interactive-instruments/etf-spi/internal/engine/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSuite(id string, assertions int) *domain.ExecutableTestSuite {
	step := domain.TestStep{EID: domain.NewEID(id + ".step")}
	for i := range assertions {
		step.Assertions = append(step.Assertions, domain.TestAssertion{
			EID:      domain.NewEID(id + ".a" + string(rune('0'+i))),
			Expected: domain.StatusPassed,
		})
	}
	return &domain.ExecutableTestSuite{
		EID:      domain.NewEID(id),
		Label:    id,
		DriverID: "test",
		Modules: []domain.TestModule{{
			EID:   domain.NewEID(id + ".module"),
			Cases: []domain.TestCase{{EID: domain.NewEID(id + ".case"), Steps: []domain.TestStep{step}}},
		}},
		LowestLevelItemSize: assertions,
	}
}

func newTaskDto(suite *domain.ExecutableTestSuite) *domain.TestTaskDto {
	return &domain.TestTaskDto{
		EID:        domain.RandomEID(),
		RunID:      domain.NewEID("run"),
		Suite:      suite,
		TestObject: &domain.TestObject{EID: domain.NewEID("object"), Label: "object"},
	}
}

func newLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	l := mocks.NewMockLogger(ctrl)
	l.EXPECT().Debug(gomock.Any()).AnyTimes()
	l.EXPECT().Info(gomock.Any()).AnyTimes()
	l.EXPECT().Warn(gomock.Any()).AnyTimes()
	l.EXPECT().Error(gomock.Any()).AnyTimes()
	return l
}

func TestCollector_ResultTree(t *testing.T) {
	ctrl := gomock.NewController(t)
	persistor := mocks.NewMockResultPersistor(ctrl)
	suite := newSuite("ETS.1", 2)
	dto := newTaskDto(suite)
	c := lifecycle.NewCollector(dto, persistor, newLogger(ctrl))

	var persisted *domain.TestTaskResult
	persistor.EXPECT().SetResult(gomock.Any()).DoAndReturn(func(r *domain.TestTaskResult) error {
		persisted = r
		return nil
	})

	task, err := c.Start(domain.LevelTask, suite.EID)
	require.NoError(t, err)
	module, err := c.Start(domain.LevelModule, suite.Modules[0].EID)
	require.NoError(t, err)
	tc, err := c.Start(domain.LevelCase, suite.Modules[0].Cases[0].EID)
	require.NoError(t, err)
	step, err := c.Start(domain.LevelStep, suite.Modules[0].Cases[0].Steps[0].EID)
	require.NoError(t, err)

	for i, a := range suite.Modules[0].Cases[0].Steps[0].Assertions {
		id, err := c.Start(domain.LevelAssertion, a.EID)
		require.NoError(t, err)
		require.NoError(t, c.AddMessage("TR.passed", map[string]string{"n": "1"}))
		require.NoError(t, c.End(id, domain.StatusPassed))
		current, _ := c.Progress().Get()
		assert.Equal(t, i+1, current)
	}

	_, err = c.AddAttachment("log", "text/plain", 12)
	require.NoError(t, err)
	require.NoError(t, c.End(step, domain.StatusPassed))
	require.NoError(t, c.End(tc, domain.StatusPassed))
	require.NoError(t, c.End(module, domain.StatusPassed))
	assert.Nil(t, c.Result())
	require.NoError(t, c.End(task, domain.StatusPassed))

	require.NotNil(t, persisted)
	assert.Same(t, persisted, c.Result())
	assert.Equal(t, dto.EID, persisted.TaskID)
	assert.Equal(t, suite.EID, persisted.SuiteID)
	assert.Equal(t, domain.NewEID("object"), persisted.TestObjectID)
	assert.Equal(t, domain.StatusPassed, persisted.Status())

	root := persisted.Root
	require.Len(t, root.Children, 1)
	stepNode := root.Children[0].Children[0].Children[0]
	assert.Len(t, stepNode.Children, 2)
	assert.Len(t, stepNode.Attachments, 1)
	assert.Equal(t, "TR.passed", stepNode.Children[0].Messages[0].TemplateID)
	assert.False(t, c.InternalErrorReported())
}

func TestCollector_Protocol(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := lifecycle.NewCollector(newTaskDto(newSuite("ETS.1", 1)), nil, newLogger(ctrl))

	_, err := c.Start(domain.LevelModule, domain.NewEID("m"))
	require.ErrorIs(t, err, domain.ErrResultProtocol)

	err = c.End(domain.NewEID("x"), domain.StatusPassed)
	require.ErrorIs(t, err, domain.ErrResultProtocol)

	err = c.AddMessage("TR.x", nil)
	require.ErrorIs(t, err, domain.ErrResultProtocol)

	_, err = c.AddAttachment("x", "text/plain", 0)
	require.ErrorIs(t, err, domain.ErrResultProtocol)

	task, err := c.Start(domain.LevelTask, domain.NewEID("ETS.1"))
	require.NoError(t, err)

	_, err = c.Start(domain.LevelCase, domain.NewEID("c"))
	require.ErrorIs(t, err, domain.ErrResultProtocol)

	module, err := c.Start(domain.LevelModule, domain.NewEID("m"))
	require.NoError(t, err)

	err = c.End(task, domain.StatusPassed)
	require.ErrorIs(t, err, domain.ErrResultProtocol)

	require.NoError(t, c.End(module, domain.StatusFailed))
	require.NoError(t, c.End(task, domain.StatusFailed))

	_, err = c.Start(domain.LevelTask, domain.NewEID("ETS.1"))
	require.ErrorIs(t, err, domain.ErrResultProtocol, "a task result is started only once")
}

func TestCollector_ReportInternalError(t *testing.T) {
	t.Run("closes open results", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		persistor := mocks.NewMockResultPersistor(ctrl)
		c := lifecycle.NewCollector(newTaskDto(newSuite("ETS.1", 1)), persistor, newLogger(ctrl))

		_, err := c.Start(domain.LevelTask, domain.NewEID("ETS.1"))
		require.NoError(t, err)
		_, err = c.Start(domain.LevelModule, domain.NewEID("m"))
		require.NoError(t, err)

		persistor.EXPECT().Persisted().Return(false)
		persistor.EXPECT().SetResult(gomock.Any()).Return(nil)

		c.ReportInternalError(errors.New("boom"))

		assert.True(t, c.InternalErrorReported())
		res := c.Result()
		require.NotNil(t, res)
		assert.Equal(t, domain.StatusInternalError, res.Status())
		assert.Equal(t, domain.StatusInternalError, res.Root.Children[0].Status)
		assert.Equal(t, []string{"boom"}, res.Errors)
	})

	t.Run("without started result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		persistor := mocks.NewMockResultPersistor(ctrl)
		suite := newSuite("ETS.1", 1)
		c := lifecycle.NewCollector(newTaskDto(suite), persistor, newLogger(ctrl))

		persistor.EXPECT().Persisted().Return(false)
		persistor.EXPECT().SetResult(gomock.Any()).Return(nil)

		c.ReportInternalError(errors.New("boom"))

		res := c.Result()
		require.NotNil(t, res)
		assert.Equal(t, suite.EID, res.Root.ResultedFrom)
		assert.Equal(t, domain.StatusInternalError, res.Status())
	})

	t.Run("already persisted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		persistor := mocks.NewMockResultPersistor(ctrl)
		suite := newSuite("ETS.1", 1)
		c := lifecycle.NewCollector(newTaskDto(suite), persistor, newLogger(ctrl))

		var stored *domain.TestTaskResult
		persistor.EXPECT().SetResult(gomock.Any()).DoAndReturn(func(r *domain.TestTaskResult) error {
			stored = r
			return nil
		})
		task, err := c.Start(domain.LevelTask, suite.EID)
		require.NoError(t, err)
		require.NoError(t, c.End(task, domain.StatusPassed))
		require.Equal(t, domain.StatusPassed, c.Result().Status())

		var updated *domain.TestTaskResult
		persistor.EXPECT().Persisted().Return(true)
		persistor.EXPECT().UpdateResult(gomock.Any()).DoAndReturn(func(r *domain.TestTaskResult) error {
			updated = r
			return nil
		})

		c.ReportInternalError(errors.New("boom"))

		assert.True(t, c.InternalErrorReported())
		assert.Equal(t, domain.StatusInternalError, c.Result().Status())
		require.NotNil(t, updated)
		assert.Equal(t, stored.EID, updated.EID)
		assert.Equal(t, domain.StatusInternalError, updated.Status())
		assert.Equal(t, []string{"boom"}, updated.Errors)
	})
}

func TestCollector_CheckCancelWithoutTask(t *testing.T) {
	c := lifecycle.NewCollector(newTaskDto(newSuite("ETS.1", 1)), nil, newLogger(gomock.NewController(t)))
	require.NoError(t, c.CheckCancel(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, c.CheckCancel(ctx), domain.ErrInterrupted)
}

func TestProgress(t *testing.T) {
	p := lifecycle.NewProgress(2)
	p.Advance()
	current, maxSteps := p.Get()
	assert.Equal(t, 1, current)
	assert.Equal(t, 2, maxSteps)

	p.Advance()
	current, maxSteps = p.Get()
	assert.Equal(t, 2, current)
	assert.Equal(t, 3, maxSteps, "budget grows when reached")

	_, maxSteps = lifecycle.NewProgress(0).Get()
	assert.Equal(t, domain.DefaultMaxSteps, maxSteps)
}
