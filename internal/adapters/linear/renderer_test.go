package linear_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/adapters/linear"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_RunLifecycle(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)
	require.NoError(t, r.Start(context.Background()))

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.OnPlanEmit("INSPIRE run", []string{"Conformance class A", "Conformance class B"})

	r.OnTaskStart("run", "", "INSPIRE run", start)
	r.OnTaskStart("a", "run", "Conformance class A", start)
	r.OnTaskLog("a", []byte("Result: PA"))
	r.OnTaskLog("a", []byte("SSED\n"))
	r.OnTaskComplete("a", start.Add(1500*time.Millisecond), nil)

	r.OnTaskStart("b", "run", "Conformance class B", start.Add(2*time.Second))
	r.OnTaskLog("b", []byte("Result: INTERNAL_ERROR"))
	r.OnTaskComplete("b", start.Add(3*time.Second), errors.New("test task failed"))
	r.OnTaskComplete("run", start.Add(3*time.Second), nil)

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())

	g := goldie.New(t)
	g.Assert(t, "lifecycle_stdout", stdout.Bytes())
	g.Assert(t, "lifecycle_stderr", stderr.Bytes())
}

func TestRenderer_UnknownSpan(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnTaskLog("missing", []byte("lost\n"))
	r.OnTaskComplete("missing", time.Now(), nil)
	require.NoError(t, r.Stop())

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String(), "no summary without completed spans")
}

func TestRenderer_StopFlushesPartialLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnTaskStart("a", "", "A", time.Now())
	r.OnTaskLog("a", []byte("line\r\npartial"))
	assert.Equal(t, "[A] line\n", stdout.String())

	require.NoError(t, r.Stop())
	assert.Equal(t, "[A] line\n[A] partial\n", stdout.String())
}

func TestRenderer_Progress(t *testing.T) {
	var stdout, stderr bytes.Buffer
	done := 0
	r := linear.NewRenderer(&stdout, &stderr).WithProgress(func() (int, int, error) {
		return done, 4, nil
	})

	start := time.Now()
	r.OnTaskStart("a", "", "A", start)
	done = 1
	r.OnTaskComplete("a", start, nil)
	r.OnTaskStart("b", "", "B", start)
	done = 4
	r.OnTaskComplete("b", start, errors.New("test task failed"))

	assert.Contains(t, stderr.String(), "Progress: 1/4 (25%)\n")
	assert.Contains(t, stderr.String(), "Progress: 4/4 (100%)\n")
}

func TestRenderer_ProgressErrorIsSkipped(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr).WithProgress(func() (int, int, error) {
		return 0, 0, errors.New("no tasks")
	})

	r.OnTaskStart("a", "", "A", time.Now())
	r.OnTaskComplete("a", time.Now(), nil)
	assert.NotContains(t, stderr.String(), "Progress")
}
