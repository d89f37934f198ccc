// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/interactive-instruments/etf-spi/internal/core/ports"
	"go.trai.ch/zerr"
)

// messager describes an error that can report its own message without the chain.
type messager interface {
	Message() string
}

// metadataer describes an error that carries structured context.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain prepared for printing.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
}

var _ ports.Logger = (*Logger)(nil)

// New creates a Logger writing pretty output to os.Stderr at info level.
func New() *Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		output: os.Stderr,
	}
	l.rebuild()
	return l
}

// Environment variables read by NewFromEnv.
const (
	EnvLevel = "ETF_LOG_LEVEL"
	EnvJSON  = "ETF_LOG_JSON"
)

// NewFromEnv creates a Logger like New and applies EnvLevel and EnvJSON, so
// that messages written before etf.yaml is read already follow them.
// Unparsable values are ignored.
func NewFromEnv(lookup func(string) (string, bool)) *Logger {
	l := New()
	if v, ok := lookup(EnvLevel); ok {
		l.SetLevel(strings.ToLower(v))
	}
	if v, ok := lookup(EnvJSON); ok {
		if enable, err := strconv.ParseBool(v); err == nil {
			l.SetJSON(enable)
		}
	}
	return l
}

// rebuild replaces the handler; l.mu must be held or l must be unshared.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.output, opts))
}

// SetOutput updates the logger's output destination, keeping the JSON mode.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonMode = enable
	l.rebuild()
}

// SetLevel sets the minimum level by name: debug, info, warn or error.
// Unknown names leave the level unchanged.
func (l *Logger) SetLevel(name string) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return
	}
	l.level.Set(level)
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its cause chain and metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		zerr.Log(context.Background(), l.logger, err)
		return
	}
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries walks the chain of err. Links without a message of
// their own only carry metadata, which is merged into the neighboring entry.
func collectErrorEntries(err error) []ErrorEntry {
	var (
		entries []ErrorEntry
		pending map[string]any
	)
	merge := func(dst, src map[string]any) map[string]any {
		if len(src) == 0 {
			return dst
		}
		if dst == nil {
			dst = make(map[string]any, len(src))
		}
		maps.Copy(dst, src)
		return dst
	}

	for current := err; current != nil; current = errors.Unwrap(current) {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}
		var meta map[string]any
		if md, ok := current.(metadataer); ok {
			meta = md.Metadata()
		}
		switch {
		case m.Message() != "":
			entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: merge(meta, pending)})
			pending = nil
		case len(entries) > 0:
			last := &entries[len(entries)-1]
			last.Metadata = merge(last.Metadata, meta)
		default:
			pending = merge(pending, meta)
		}
	}
	return entries
}

// formatErrorEntries renders entries as "Error: ..." followed by a
// "Caused by:" list. Metadata keys are printed sorted below their message.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, e := range entries {
		msgLines := strings.Split(e.Message, "\n")
		indent := "      "
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			indent = "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    → "+msgLines[0])
		}
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, k := range slices.Sorted(maps.Keys(e.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, e.Metadata[k]))
		}
	}
	return strings.Join(lines, "\n")
}
