package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/adapters/logger"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func newBufferedLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	return l, buf
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newBufferedLogger(t)

	l.Debug("hidden")
	l.Info("Preparing 2 Test Task(s)")
	l.Warn("suite reloaded")
	assert.Equal(t, "Preparing 2 Test Task(s)\n! suite reloaded\n", buf.String())

	buf.Reset()
	l.SetLevel("debug")
	l.Debug("lookup round 1")
	assert.Equal(t, "● lookup round 1\n", buf.String())

	buf.Reset()
	l.SetLevel("nonsense")
	l.Debug("still visible")
	assert.Equal(t, "● still visible\n", buf.String())
}

func TestLogger_Error(t *testing.T) {
	l, buf := newBufferedLogger(t)

	err := zerr.With(zerr.Wrap(domain.ErrNotFound, "failed to resolve executable test suites"), "suite", "EID1")
	l.Error(err)

	want := "✗ Error: failed to resolve executable test suites\n" +
		"       suite: EID1\n" +
		"\n" +
		"  Caused by:\n" +
		"    → object not found\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newBufferedLogger(t)
	l.SetJSON(true)

	l.Error(zerr.With(zerr.Wrap(domain.ErrTaskFailed, "test task failed"), "task", "ETS.1"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "test task failed: test task failed", record["msg"])
	assert.Equal(t, "ETS.1", record["task"])

	buf.Reset()
	l.SetJSON(false)
	l.Info("pretty again")
	assert.Equal(t, "pretty again\n", buf.String())
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	env := map[string]string{logger.EnvLevel: "WARN", logger.EnvJSON: "true"}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	buf := &bytes.Buffer{}
	l := logger.NewFromEnv(lookup)
	l.SetOutput(buf)

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("suite reloaded")
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "suite reloaded", record["msg"])

	env[logger.EnvJSON] = "maybe"
	buf.Reset()
	l = logger.NewFromEnv(lookup)
	l.SetOutput(buf)
	l.Warn("pretty")
	assert.Equal(t, "! pretty\n", buf.String())
}

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle"), "outer"),
			wantMessages: []string{"outer", "middle", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "metadata on sentinel wrap",
			err:          zerr.With(zerr.With(zerr.Wrap(domain.ErrNotFound, "lookup"), "a", 1), "b", "x"),
			wantMessages: []string{"lookup", "object not found"},
			wantMetadata: []map[string]any{{"a": 1, "b": "x"}, {}},
		},
		{
			name:         "metadata on standard error",
			err:          zerr.With(errors.New("disk full"), "path", "/tmp"),
			wantMessages: []string{"disk full"},
			wantMetadata: []map[string]any{{"path": "/tmp"}},
		},
		{
			name:         "message less link merges into previous",
			err:          zerr.Wrap(zerr.With(errors.New("disk full"), "path", "/tmp"), "failed to write"),
			wantMessages: []string{"failed to write", "disk full"},
			wantMetadata: []map[string]any{{"path": "/tmp"}, nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)
			require.Len(t, entries, len(tt.wantMessages))
			for i, want := range tt.wantMessages {
				assert.Equal(t, want, entries[i].Message)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata)
			}
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{
				{Message: "error", Metadata: map[string]any{"zebra": "z", "alpha": "a"}},
				{Message: "cause", Metadata: map[string]any{"id": "EID1"}},
			},
			want: "Error: error\n       alpha: a\n       zebra: z\n\n  Caused by:\n    → cause\n      id: EID1",
		},
		{
			name:    "multiline",
			entries: []logger.ErrorEntry{{Message: "line1\nline2"}, {Message: "cause1\ncause2"}},
			want:    "Error: line1\n       line2\n\n  Caused by:\n    → cause1\n      cause2",
		},
		{
			name:    "empty",
			entries: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
