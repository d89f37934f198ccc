// Package telemetry bridges OpenTelemetry spans to the progress renderer.
package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit is the buffered size that forces a flush.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is the longest time a complete line stays buffered.
	DefaultTimeLimit = 50 * time.Millisecond
)

// ErrBatcherClosed is returned by Write after Close.
var ErrBatcherClosed = errors.New("line batcher is closed")

// LineBatcher collects span output and hands it on in whole lines. Complete
// lines are flushed after the time limit or as soon as the size limit is
// reached. A trailing partial line is only flushed by Close.
type LineBatcher struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buffer bytes.Buffer
	timer  *time.Timer
	closed bool
}

// NewLineBatcher returns a LineBatcher. Limits below one use the defaults.
func NewLineBatcher(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *LineBatcher {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &LineBatcher{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
	}
}

// Write buffers p.
func (b *LineBatcher) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrBatcherClosed
	}
	n, _ := b.buffer.Write(p)

	switch {
	case b.buffer.Len() >= b.sizeLimit:
		b.flushLocked(false)
	case b.timer == nil && bytes.IndexByte(b.buffer.Bytes(), '\n') >= 0:
		b.timer = time.AfterFunc(b.timeLimit, b.flushLines)
	}
	return n, nil
}

// Close flushes everything, including a partial last line.
func (b *LineBatcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.flushLocked(true)
	return nil
}

func (b *LineBatcher) flushLines() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.timer = nil
	if b.closed {
		return
	}
	b.flushLocked(false)
}

// flushLocked hands on all complete lines, or the whole buffer if all is set
// or a single line exceeds the size limit. mu must be held.
func (b *LineBatcher) flushLocked(all bool) {
	data := b.buffer.Bytes()
	end := len(data)
	if !all {
		if i := bytes.LastIndexByte(data, '\n'); i >= 0 {
			end = i + 1
		} else if len(data) < b.sizeLimit {
			return
		}
	}
	if end == 0 {
		return
	}

	out := make([]byte, end)
	copy(out, data[:end])
	b.buffer.Next(end)

	if b.onFlush != nil {
		b.onFlush(out)
	}
}
