package artistloader

import "time"

// deferred runs fn once after a delay measured in ticked frame time.
// Scheduling again replaces the pending action; Cancel drops it.
type deferred struct {
	remaining time.Duration
	fn        func()
	armed     bool
}

func (d *deferred) schedule(after time.Duration, fn func()) {
	d.remaining = after
	d.fn = fn
	d.armed = true
	if after <= 0 {
		d.fire()
	}
}

func (d *deferred) cancel() {
	d.armed = false
	d.fn = nil
}

func (d *deferred) pending() bool {
	return d.armed
}

// tick advances the clock and fires the action when it comes due.
func (d *deferred) tick(dt time.Duration) {
	if !d.armed {
		return
	}
	d.remaining -= dt
	if d.remaining <= 0 {
		d.fire()
	}
}

func (d *deferred) fire() {
	fn := d.fn
	d.armed = false
	d.fn = nil
	if fn != nil {
		fn()
	}
}
