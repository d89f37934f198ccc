// Package style holds the colors and icons shared by the log handler, the
// progress renderer and the CLI tables.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
)

// Colors.
var (
	Blue   = lipgloss.Color("#2563EB")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Purple = lipgloss.Color("#8B5CF6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Skip    = "-"
	Info    = "i"
	Dot     = "●"
)

// StatusColor returns the color a result status is rendered with.
func StatusColor(s domain.ResultStatus) lipgloss.Color {
	switch s {
	case domain.StatusPassed:
		return Green
	case domain.StatusFailed, domain.StatusInternalError:
		return Red
	case domain.StatusWarning:
		return Yellow
	case domain.StatusInfo:
		return Blue
	default:
		return Slate
	}
}

// StatusIcon returns the icon a result status is rendered with.
func StatusIcon(s domain.ResultStatus) string {
	switch s {
	case domain.StatusPassed:
		return Check
	case domain.StatusFailed, domain.StatusInternalError:
		return Cross
	case domain.StatusWarning:
		return Warning
	case domain.StatusInfo:
		return Info
	case domain.StatusSkipped, domain.StatusNotApplicable:
		return Skip
	default:
		return Dot
	}
}
