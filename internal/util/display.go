package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal colors
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"
)

// colorEnabled is decided once from stdout; tests and pipes get plain text.
var colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))

// SetColorEnabled overrides terminal detection.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled reports whether title helpers emit ANSI sequences.
func ColorEnabled() bool {
	return colorEnabled
}

// TerminalWidth returns the width of stdout, or fallback when stdout is not
// a terminal.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// GetDisplayWidth calculates the display width of a string, so that
// subscripts like the one in "VO₂ Max" line up in tables.
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to the given display width.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// PadLeft right-aligns text within the given display width.
func PadLeft(text string, width int) string {
	return runewidth.FillLeft(text, width)
}

// Truncate shortens text to the given display width, ending with "…".
func Truncate(text string, width int) string {
	return runewidth.Truncate(text, width, "…")
}

func colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return fmt.Sprintf("%s%s%s%s", ColorBold, color, text, ColorReset)
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return colorize(ColorMagenta, title)
}

// FormatDiagnosticTitle formats diagnostic titles (Yellow + Bold)
func FormatDiagnosticTitle(title string) string {
	return colorize(ColorYellow, title)
}

// FormatOverviewTitle formats overview/summary titles (Cyan + Bold)
func FormatOverviewTitle(title string) string {
	return colorize(ColorCyan, title)
}

// FormatDataTitle formats data section titles (Green + Bold)
func FormatDataTitle(title string) string {
	return colorize(ColorGreen, title)
}

// FormatErrorText formats failures (Red + Bold)
func FormatErrorText(text string) string {
	return colorize(ColorRed, text)
}

// FormatSectionSeparator creates a visual separator line of the given width
func FormatSectionSeparator(width int) string {
	return colorize(ColorCyan, strings.Repeat("─", width))
}
