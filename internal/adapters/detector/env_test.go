package detector_test

import (
	"bytes"
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/adapters/detector"
	"github.com/stretchr/testify/assert"
)

func TestDetectEnvironment_NonTerminal(t *testing.T) {
	assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment(new(bytes.Buffer)))
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment(new(bytes.Buffer)))
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		detected detector.OutputMode
		choice   string
		want     detector.OutputMode
	}{
		{"auto keeps tui", detector.ModeTUI, "auto", detector.ModeTUI},
		{"empty keeps linear", detector.ModeLinear, "", detector.ModeLinear},
		{"force tui", detector.ModeLinear, "tui", detector.ModeTUI},
		{"force linear", detector.ModeTUI, "linear", detector.ModeLinear},
		{"ci alias", detector.ModeTUI, "ci", detector.ModeLinear},
		{"unknown", detector.ModeTUI, "fancy", detector.ModeTUI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveMode(tt.detected, tt.choice))
		})
	}
}
