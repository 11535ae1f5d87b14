// ABOUTME: Trailing-edge debouncer for remote pushes.
// ABOUTME: Repeated Schedule calls inside the window collapse into one run.

package sync

import (
	gosync "sync"
	"time"
)

const DefaultDebounce = 10 * time.Second

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// TimerFunc starts fn after d. time.AfterFunc satisfies it.
type TimerFunc func(d time.Duration, fn func()) Timer

func realTimer(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Debouncer runs task once the window passes with no further Schedule calls.
type Debouncer struct {
	window   time.Duration
	task     func()
	newTimer TimerFunc

	mu      gosync.Mutex
	timer   Timer
	pending bool
	gen     uint64
	running gosync.WaitGroup
}

func NewDebouncer(window time.Duration, task func(), newTimer TimerFunc) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	if newTimer == nil {
		newTimer = realTimer
	}
	return &Debouncer{window: window, task: task, newTimer: newTimer}
}

// Schedule (re)starts the window.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = d.newTimer(d.window, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.running.Add(1)
	d.mu.Unlock()
	defer d.running.Done()
	d.task()
}

// Cancel drops the pending run, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = nil
	d.pending = false
}

// Flush runs the pending task now on the calling goroutine. It reports
// whether anything was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = nil
	d.pending = false
	d.mu.Unlock()
	d.task()
	return true
}

// Wait blocks until every timer-started run has returned.
func (d *Debouncer) Wait() {
	d.running.Wait()
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
