package game

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback. Stop is idempotent.
type Timer interface {
	Stop()
}

// Clock schedules callbacks. Implementations may call fn from any goroutine.
type Clock interface {
	// Every calls fn once per period until the returned timer is stopped.
	Every(period time.Duration, fn func()) Timer
	// After calls fn once after d unless the returned timer is stopped first.
	After(d time.Duration, fn func()) Timer
}

// RealClock schedules callbacks on wall-clock time.
type RealClock struct{}

// Every starts a ticker goroutine.
func (RealClock) Every(period time.Duration, fn func()) Timer {
	t := &realTicker{
		ticker: time.NewTicker(period),
		done:   make(chan struct{}),
	}
	go t.loop(fn)
	return t
}

// After wraps time.AfterFunc.
func (RealClock) After(d time.Duration, fn func()) Timer {
	return realAfter{t: time.AfterFunc(d, fn)}
}

type realTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *realTicker) loop(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			// Stop may race with a pending tick; prefer done.
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

func (t *realTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

type realAfter struct {
	t *time.Timer
}

func (a realAfter) Stop() {
	a.t.Stop()
}

// ManualClock is a deterministic Clock driven by Advance. Callbacks run
// synchronously on the goroutine calling Advance, in due-time order.
// It is used by tests and by headless simulations.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	clock  *ManualClock
	id     int
	due    time.Duration
	period time.Duration // zero for one-shot timers
	fn     func()
}

// NewManualClock creates a clock at time zero with nothing scheduled.
func NewManualClock() *ManualClock {
	return &ManualClock{timers: make(map[int]*manualTimer)}
}

// Every schedules fn every period, first firing one period from now.
func (c *ManualClock) Every(period time.Duration, fn func()) Timer {
	return c.schedule(period, period, fn)
}

// After schedules fn once, d from now.
func (c *ManualClock) After(d time.Duration, fn func()) Timer {
	return c.schedule(d, 0, fn)
}

func (c *ManualClock) schedule(delay, period time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	t := &manualTimer{
		clock:  c,
		id:     c.nextID,
		due:    c.now + delay,
		period: period,
		fn:     fn,
	}
	c.timers[t.id] = t
	return t
}

func (t *manualTimer) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	delete(t.clock.timers, t.id)
}

// Advance moves the clock forward by d, firing every callback that falls due.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		next := c.nextDueLocked(target)
		if next == nil {
			break
		}
		c.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			delete(c.timers, next.id)
		}
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// nextDueLocked returns the earliest timer due at or before target.
// Ties fire in scheduling order.
func (c *ManualClock) nextDueLocked(target time.Duration) *manualTimer {
	due := make([]*manualTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if t.due <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	return due[0]
}

// Now returns the elapsed time since the clock was created.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Active returns the number of scheduled, unstopped timers.
func (c *ManualClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
