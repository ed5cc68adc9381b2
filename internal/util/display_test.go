package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, GetDisplayWidth("Steps"))
	assert.Equal(t, 7, GetDisplayWidth("VO₂ Max"))
	assert.Equal(t, 0, GetDisplayWidth(""))
}

func TestPadding(t *testing.T) {
	assert.Equal(t, "VO₂ Max   ", PadRight("VO₂ Max", 10))
	assert.Equal(t, "   VO₂ Max", PadLeft("VO₂ Max", 10))
	assert.Equal(t, "Steps", PadRight("Steps", 3), "never truncates")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Resting…", Truncate("Resting Heart Rate", 8))
	assert.Equal(t, "Sleep", Truncate("Sleep", 8))
}

func TestColorToggle(t *testing.T) {
	prev := ColorEnabled()
	defer SetColorEnabled(prev)

	SetColorEnabled(false)
	assert.Equal(t, "Summary", FormatOverviewTitle("Summary"))
	assert.Equal(t, "──", FormatSectionSeparator(2))

	SetColorEnabled(true)
	assert.Equal(t, ColorBold+ColorCyan+"Summary"+ColorReset, FormatOverviewTitle("Summary"))
	assert.Equal(t, ColorBold+ColorRed+"failed"+ColorReset, FormatErrorText("failed"))
}

func TestTerminalWidthFallback(t *testing.T) {
	// Test binaries do not run with a terminal on stdout.
	if ColorEnabled() {
		t.Skip("stdout is a terminal")
	}
	assert.Equal(t, 80, TerminalWidth(80))
}
