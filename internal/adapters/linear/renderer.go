// Package linear provides a synchronous, line-buffered progress renderer for
// CI logs and non-interactive terminals.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"github.com/interactive-instruments/etf-spi/internal/ui/output"
	"github.com/interactive-instruments/etf-spi/internal/ui/style"
	"github.com/muesli/termenv"
)

// Renderer implements ports.Renderer. Span output goes to stdout prefixed
// with the span name; lifecycle messages go to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	progress ports.ProgressFunc

	mu        sync.Mutex
	spans     map[string]*spanState
	completed int
	failed    int
}

type spanState struct {
	name      string
	startTime time.Time
	buffer    bytes.Buffer
}

// NewRenderer creates a Renderer. Nil writers default to os.Stdout and
// os.Stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.New(stderr),
		spans:  make(map[string]*spanState),
	}
}

// WithProgress makes the renderer print the run progress after every task.
// It must be set before the renderer is started.
func (r *Renderer) WithProgress(fn ports.ProgressFunc) *Renderer {
	r.progress = fn
	return r
}

// Start is a no-op.
func (r *Renderer) Start(context.Context) error {
	return nil
}

// Stop flushes partial lines of spans that never completed and prints a
// summary.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.spans {
		r.flushLocked(s)
	}
	if r.completed+r.failed > 0 {
		_, _ = fmt.Fprintf(r.stderr, "%d completed, %d failed\n", r.completed, r.failed)
	}
	return nil
}

// Wait is a no-op.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the number of planned tasks of a run.
func (r *Renderer) OnPlanEmit(run string, tasks []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Running %d test task(s) for %s\n", len(tasks), run)
}

// OnTaskStart prints a start message.
func (r *Renderer) OnTaskStart(spanID, _, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans[spanID] = &spanState{name: name, startTime: startTime}
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", r.prefix(name))
}

// OnTaskLog prints complete lines and keeps a trailing partial line.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.spans[spanID]
	if !ok {
		return
	}
	s.buffer.Write(data)
	for {
		i := bytes.IndexByte(s.buffer.Bytes(), '\n')
		if i < 0 {
			return
		}
		r.printLocked(s.name, s.buffer.Next(i+1))
	}
}

// OnTaskComplete flushes the span's output and prints its outcome.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.spans[spanID]
	if !ok {
		return
	}
	r.flushLocked(s)
	delete(r.spans, spanID)

	d := endTime.Sub(s.startTime).Round(time.Millisecond)
	if err != nil {
		r.failed++
		icon := r.output.String(style.Cross).Foreground(r.output.Color(string(style.Red)))
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", r.prefix(s.name), icon, d, err)
	} else {
		r.completed++
		icon := r.output.String(style.Check).Foreground(r.output.Color(string(style.Green)))
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", r.prefix(s.name), icon, d)
	}
	r.printProgressLocked()
}

// printProgressLocked prints the run progress if a source is set. r.mu must be held.
func (r *Renderer) printProgressLocked() {
	if r.progress == nil {
		return
	}
	current, maxSteps, err := r.progress()
	if err != nil || maxSteps <= 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "Progress: %d/%d (%d%%)\n", current, maxSteps, current*100/maxSteps)
}

func (r *Renderer) prefix(name string) string {
	return r.output.String("[" + name + "]").Faint().String()
}

// flushLocked prints the remaining partial line. r.mu must be held.
func (r *Renderer) flushLocked(s *spanState) {
	if s.buffer.Len() > 0 {
		r.printLocked(s.name, s.buffer.Bytes())
		s.buffer.Reset()
	}
}

// printLocked prints one line with the span name prefix. r.mu must be held.
func (r *Renderer) printLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}
