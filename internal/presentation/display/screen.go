package display

import (
	"fmt"
	"io"
	"os"

	"github.com/penwyp/go-garmin-csv/internal/util"
	"golang.org/x/term"
)

const (
	clearScreen    = "\033[2J"
	clearScroll    = "\033[3J"
	moveCursorHome = "\033[H"
)

// Screen frames the repeated output of watch mode. On a terminal each
// frame replaces the previous one; elsewhere frames are separated by a rule.
type Screen struct {
	w      io.Writer
	redraw bool
	frames int
}

func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w, redraw: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetRedraw forces or disables in-place redrawing.
func (s *Screen) SetRedraw(redraw bool) {
	s.redraw = redraw
}

// Frames returns how many frames have been started.
func (s *Screen) Frames() int {
	return s.frames
}

// Begin starts a new frame headed by title.
func (s *Screen) Begin(title string) {
	width := util.TerminalWidth(80)

	switch {
	case s.redraw:
		fmt.Fprint(s.w, clearScreen+clearScroll+moveCursorHome)
	case s.frames > 0:
		fmt.Fprintln(s.w)
		fmt.Fprintln(s.w, util.FormatSectionSeparator(width))
	}

	fmt.Fprintln(s.w, util.FormatHeaderTitle(title))
	fmt.Fprintln(s.w)
	s.frames++
}
