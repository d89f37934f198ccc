package output_test

import (
	"bytes"
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/ui/output"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestColorProfile(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile(&buf))

	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.Ascii, output.ColorProfile(&buf), "buffers are not terminals")
}

func TestIsCI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.True(t, output.IsCI())
	t.Setenv("CI", "1")
	assert.True(t, output.IsCI())
	t.Setenv("CI", "false")
	assert.False(t, output.IsCI())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)
	_, _ = out.WriteString("plain")
	assert.Equal(t, "plain", buf.String())

	assert.NotNil(t, output.New(nil))
}

func TestNewWithProfile(t *testing.T) {
	var buf bytes.Buffer
	out := output.NewWithProfile(&buf, termenv.ANSI)
	_, _ = out.WriteString(out.String("red").Foreground(termenv.ANSIRed).String())
	assert.Contains(t, buf.String(), "\x1b[")
}
