package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/interactive-instruments/etf-spi/internal/ui/style"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(style.Blue)
	countStyle   = lipgloss.NewStyle().Foreground(style.Slate)
	pendingStyle = lipgloss.NewStyle().Foreground(style.Slate)
	runningStyle = lipgloss.NewStyle().Foreground(style.Yellow)
	doneStyle    = lipgloss.NewStyle().Foreground(style.Green)
	errorStyle   = lipgloss.NewStyle().Foreground(style.Red)
	logStyle     = lipgloss.NewStyle().Foreground(style.Slate).PaddingLeft(4)
)

func statusIcon(s TaskStatus) string {
	switch s {
	case StatusRunning:
		return runningStyle.Render(style.Dot)
	case StatusDone:
		return doneStyle.Render(style.Check)
	case StatusError:
		return errorStyle.Render(style.Cross)
	default:
		return pendingStyle.Render(style.Skip)
	}
}
