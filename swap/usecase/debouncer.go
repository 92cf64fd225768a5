package usecase

import (
	"sync"
	"time"
)

// debouncer runs the last scheduled function once no new schedule arrived for the delay.
// Each schedule gets a sequence number so that callers can tell if their run is still the latest.
type debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	sequence uint64
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay: delay,
	}
}

// Schedule cancels any pending run and schedules fn after the delay.
// fn receives the sequence number of its schedule.
func (d *debouncer) Schedule(fn func(sequence uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.sequence++
	sequence := d.sequence

	d.timer = time.AfterFunc(d.delay, func() {
		fn(sequence)
	})
}

// Cancel stops any pending run. A run already started still completes
// but IsLatest reports false for it.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.sequence++
}

// IsLatest returns true if sequence is the last scheduled one and was not cancelled.
func (d *debouncer) IsLatest(sequence uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.sequence == sequence
}
