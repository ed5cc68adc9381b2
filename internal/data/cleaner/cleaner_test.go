package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanIntensityMinutesTitle(t *testing.T) {
	input := "Intensity Minutes Weekly Total\n,Actual,Goal\n2024-01-01,30,20"

	got := Inspect(input)

	assert.Equal(t, ",Actual,Goal\n2024-01-01,30,20", got.Text)
	assert.Equal(t, RepairIntensityTitle, got.Repair)
}

func TestCleanVO2MaxHeader(t *testing.T) {
	input := "VO₂ Max\n,VO₂ Max,\nNov,Running,52"

	got := Inspect(input)

	assert.Equal(t, ",Activity,VO₂ Max\nNov,Running,52", got.Text)
	assert.Equal(t, RepairVO2MaxHeader, got.Repair)
}

func TestCleanVO2MaxTitleOnly(t *testing.T) {
	assert.Equal(t, ",Activity,VO₂ Max", Clean("VO₂ Max"))
}

func TestCleanPassThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"steps", ",Actual\nNov 15,8000"},
		{"empty", ""},
		{"title not at start", "x\nIntensity Minutes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inspect(tt.input)
			assert.Equal(t, tt.input, got.Text)
			assert.Equal(t, RepairNone, got.Repair)
		})
	}
}

func TestCleanStripsByteOrderMark(t *testing.T) {
	got := Inspect("\ufeffIntensity Minutes Weekly Total\n,Actual,Goal")

	assert.Equal(t, RepairIntensityTitle, got.Repair)
	assert.Equal(t, ",Actual,Goal", got.Text)
}

func TestCleanIsIdempotentOnCleanedText(t *testing.T) {
	once := Clean("Intensity Minutes Weekly Total\n,Actual,Goal\n2024-01-01,30,20")
	assert.Equal(t, once, Clean(once))
}
