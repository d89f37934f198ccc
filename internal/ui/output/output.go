// Package output creates termenv outputs with a consistent color profile.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// ColorProfile returns the profile for w. NO_COLOR and writers that are not
// terminals get Ascii; CI environments get ANSI; terminals are detected.
func ColorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" || !IsTerminal(w) {
		return termenv.Ascii
	}
	if IsCI() {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsCI reports whether the process runs in a CI environment.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// New creates a termenv.Output for w. A nil writer means os.Stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return NewWithProfile(w, ColorProfile(w), opts...)
}

// NewWithProfile creates a termenv.Output for w with a fixed profile.
func NewWithProfile(w io.Writer, profile termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	opts = append(opts,
		termenv.WithProfile(profile),
		termenv.WithTTY(true),
	)
	return termenv.NewOutput(w, opts...)
}
