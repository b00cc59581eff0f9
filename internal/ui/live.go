package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	prog "github.com/Andrewsimsd/duplicate-file-finder/internal/progress"
)

// StdoutIsTTY reports whether stdout is an interactive terminal.
func StdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// LivePrinter is the plain-text progress fallback used when the bubbletea
// view is disabled or stdout is not a terminal. On a terminal it rewrites a
// single status line; otherwise it prints one line per stage transition so
// CI logs stay readable.
type LivePrinter struct {
	mu         sync.Mutex
	reporter   *prog.Reporter
	updates    <-chan prog.Update
	stopped    chan struct{}
	isTerminal bool
	termWidth  int
	lastStage  prog.Stage
	lastRender time.Time
}

// NewLivePrinter subscribes to the reporter and starts printing updates.
func NewLivePrinter(reporter *prog.Reporter) *LivePrinter {
	lp := &LivePrinter{
		reporter:   reporter,
		updates:    reporter.Subscribe(),
		stopped:    make(chan struct{}),
		isTerminal: StdoutIsTTY(),
		termWidth:  80,
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		lp.termWidth = w
	}

	go lp.loop()
	return lp
}

func (lp *LivePrinter) loop() {
	defer close(lp.stopped)
	for update := range lp.updates {
		lp.render(&update)
	}
}

func (lp *LivePrinter) render(update *prog.Update) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	line := prog.Format(update)

	if !lp.isTerminal {
		// One line per stage keeps non-interactive output compact.
		if update.Stage != lp.lastStage {
			lp.lastStage = update.Stage
			fmt.Println(line)
		}
		return
	}

	// Throttle rewrites to avoid flicker.
	now := time.Now()
	if now.Sub(lp.lastRender) < 100*time.Millisecond && update.Stage == lp.lastStage {
		return
	}
	lp.lastRender = now
	lp.lastStage = update.Stage

	fmt.Printf("\r\033[K%s", truncate(line, lp.termWidth-1))
}

// Stop unsubscribes and finishes the status line.
func (lp *LivePrinter) Stop() {
	lp.reporter.Unsubscribe(lp.updates)
	<-lp.stopped

	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.isTerminal {
		fmt.Print("\r\033[K")
	}
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
