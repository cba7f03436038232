package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner configuration constants
const (
	spinnerFrameWidth = 2                     // Unicode braille characters render ~2 columns
	spinnerAnimDelay  = 80 * time.Millisecond // Animation frame delay
	spinnerClearPad   = 5                     // Extra clearance for terminal variations
)

// simpleSpinner animates on the error stream while a request is in flight.
// It uses a goroutine with atomic bool for thread-safe stop signaling.
type simpleSpinner struct {
	frames   []string
	current  int
	message  string
	done     atomic.Bool
	stopped  chan struct{}
	stopOnce sync.Once
	w        io.Writer
	clearLen int
}

func newSimpleSpinner(w io.Writer, message string) *simpleSpinner {
	return &simpleSpinner{
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message:  message,
		stopped:  make(chan struct{}),
		w:        w,
		clearLen: spinnerFrameWidth + 1 + len(message),
	}
}

func (s *simpleSpinner) Start() {
	go func() {
		defer close(s.stopped)
		spinnerStyle := lipgloss.NewStyle().Foreground(colorAccent)
		for !s.done.Load() {
			frame := s.frames[s.current%len(s.frames)]
			fmt.Fprintf(s.w, "\r%s %s", spinnerStyle.Render(frame), s.message)
			s.current++
			time.Sleep(spinnerAnimDelay)
		}
	}()
}

// Stop halts the animation and clears its line. Safe to call twice.
func (s *simpleSpinner) Stop() {
	s.stopOnce.Do(func() {
		s.done.Store(true)
		<-s.stopped
		clearStr := "\r" + strings.Repeat(" ", s.clearLen+spinnerClearPad) + "\r"
		fmt.Fprint(s.w, clearStr)
	})
}

// spinnerGuard is the error stream handed to loggers. A write first stops
// any spinner drawing on the same stream, so a diagnostic never shares a
// line with a spinner frame.
type spinnerGuard struct {
	w    io.Writer
	mu   sync.Mutex
	spin *simpleSpinner
}

func newSpinnerGuard(w io.Writer) *spinnerGuard {
	return &spinnerGuard{w: w}
}

func (g *spinnerGuard) Write(p []byte) (int, error) {
	g.stopSpinner()
	return g.w.Write(p)
}

func (g *spinnerGuard) attach(s *simpleSpinner) {
	g.mu.Lock()
	g.spin = s
	g.mu.Unlock()
}

func (g *spinnerGuard) stopSpinner() {
	g.mu.Lock()
	spin := g.spin
	g.spin = nil
	g.mu.Unlock()
	if spin != nil {
		spin.Stop()
	}
}

// runWithSpinner runs an operation with a spinner on the guarded stream.
// Nothing is drawn when that stream is not a terminal or when verbose
// narration shares it.
func runWithSpinner(g *spinnerGuard, verbose bool, message string, operation func() error) error {
	if verbose || !isTerminalWriter(g.w) {
		return operation()
	}
	spin := newSimpleSpinner(g.w, message)
	g.attach(spin)
	spin.Start()
	defer g.stopSpinner()
	return operation()
}
