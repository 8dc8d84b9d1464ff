package game

// TimerDriver owns the single countdown ticker of a run.
//
// It is not safe for concurrent use; the Controller calls it with its lock
// held. Each Start bumps a generation number that is passed to the tick
// callback, so a tick that was already in flight when the driver stopped
// can be recognised and dropped by the owner.
type TimerDriver struct {
	clock  Clock
	handle Timer
	gen    uint64
}

// NewTimerDriver creates a stopped driver.
func NewTimerDriver(clock Clock) *TimerDriver {
	return &TimerDriver{clock: clock}
}

// Start stops any running ticker, then starts a new one that calls onTick
// once per TickInterval. It returns the new generation.
func (d *TimerDriver) Start(onTick func(gen uint64)) uint64 {
	d.Stop()
	d.gen++
	gen := d.gen
	d.handle = d.clock.Every(TickInterval, func() {
		onTick(gen)
	})
	return gen
}

// Stop halts the ticker. Calling it on a stopped driver does nothing.
func (d *TimerDriver) Stop() {
	if d.handle == nil {
		return
	}
	d.handle.Stop()
	d.handle = nil
}

// Running reports whether a ticker is active.
func (d *TimerDriver) Running() bool {
	return d.handle != nil
}

// Current reports whether gen belongs to the running ticker.
func (d *TimerDriver) Current(gen uint64) bool {
	return d.handle != nil && gen == d.gen
}
