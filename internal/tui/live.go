package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
)

const (
	liveWidth   = 100
	liveRows    = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws frames on a plain terminal, at most frameRate
// times per second. Final frames are always drawn.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{out: out, frameRate: frameRate}
}

func (r *LiveRenderer) OnFrame(f replay.Frame) {
	final := f.State == replay.Completed || f.State == replay.Idle
	if !final && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	fmt.Fprint(r.out, clearScreen)
	fmt.Fprintf(r.out, "%s %s  %s\n\n", cyan.Render("sortviz"), dim.Render(f.State.String()), dim.Render(string(f.Direction)))
	fmt.Fprint(r.out, renderFrame(f, liveWidth, liveRows))
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
