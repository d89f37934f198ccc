package style_test

import (
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/interactive-instruments/etf-spi/internal/ui/style"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		status domain.ResultStatus
		icon   string
		color  string
	}{
		{domain.StatusPassed, style.Check, string(style.Green)},
		{domain.StatusFailed, style.Cross, string(style.Red)},
		{domain.StatusInternalError, style.Cross, string(style.Red)},
		{domain.StatusWarning, style.Warning, string(style.Yellow)},
		{domain.StatusSkipped, style.Skip, string(style.Slate)},
		{domain.StatusUndefined, style.Dot, string(style.Slate)},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.icon, style.StatusIcon(tt.status))
			assert.Equal(t, tt.color, string(style.StatusColor(tt.status)))
		})
	}
}
