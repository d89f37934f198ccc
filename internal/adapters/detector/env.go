// Package detector selects the progress output mode.
package detector

import (
	"io"

	"github.com/interactive-instruments/etf-spi/internal/ui/output"
)

// OutputMode is the rendering mode of a test run.
type OutputMode int

const (
	// ModeAuto picks the mode from the environment.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive progress view.
	ModeTUI
	// ModeLinear forces line based output.
	ModeLinear
)

// DetectEnvironment returns ModeTUI when w is a terminal outside of CI and
// ModeLinear otherwise.
func DetectEnvironment(w io.Writer) OutputMode {
	if !output.IsTerminal(w) || output.IsCI() {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's choice ("tui", "linear", "ci" or "auto") to
// the detected mode. Unknown values keep the detected mode.
func ResolveMode(detected OutputMode, choice string) OutputMode {
	switch choice {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	default:
		return detected
	}
}
