package progress

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

const barWidth = 30

// Bar renders a single-line progress bar. Updates are monotonic: a report
// below the current position is ignored.
type Bar struct {
	mu      sync.Mutex
	w       io.Writer
	last    float64
	enabled bool
	done    bool
}

// NewBar creates a Bar writing to w. When enabled is false all methods
// are no-ops, which keeps call sites free of terminal checks.
func NewBar(w io.Writer, enabled bool) *Bar {
	return &Bar{w: w, enabled: enabled}
}

// Set advances the bar to pct (0-100).
func (b *Bar) Set(pct float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled || b.done {
		return
	}
	pct = math.Min(math.Max(pct, 0), 100)
	if pct <= b.last {
		return
	}
	b.last = pct
	b.render(pct)
}

// Finish completes the bar at 100% and moves to the next line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled || b.done {
		return
	}
	b.done = true
	b.render(100)
	fmt.Fprintln(b.w)
}

// Clear erases the bar line without completing it, for error paths.
func (b *Bar) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled || b.done {
		return
	}
	b.done = true
	fmt.Fprintf(b.w, "\r%s\r", strings.Repeat(" ", barWidth+10))
}

func (b *Bar) render(pct float64) {
	filled := int(pct / 100 * barWidth)
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	fmt.Fprintf(b.w, "\r[%s] %3.0f%%", color.CyanString(bar), pct)
}

// Animator advances a progress callback cosmetically while an operation of
// unknown duration runs. Each tick closes a fraction of the remaining gap
// to the ceiling, so the bar slows as it approaches but never arrives.
type Animator struct {
	set      func(pct float64)
	current  float64
	ceiling  float64
	interval time.Duration

	started  atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewAnimator creates an Animator that reports through set, starting at
// start and approaching ceiling on each interval tick.
func NewAnimator(set func(pct float64), start, ceiling float64, interval time.Duration) *Animator {
	return &Animator{
		set:      set,
		current:  start,
		ceiling:  ceiling,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (a *Animator) Start() {
	a.started.Store(true)
	go func() {
		defer close(a.done)
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		for {
			select {
			case <-a.stop:
				return
			case <-ticker.C:
				a.set(a.step())
			}
		}
	}()
}

// Stop halts the animation and waits for the background goroutine to
// exit. Safe to call multiple times and on an Animator that never started.
func (a *Animator) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
	if a.started.Load() {
		<-a.done
	}
}

func (a *Animator) step() float64 {
	a.current += (a.ceiling - a.current) * 0.1
	return a.current
}
