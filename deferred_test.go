package artistloader

import (
	"testing"
	"time"
)

func TestDeferred(t *testing.T) {
	fired := 0
	var d deferred
	d.schedule(100*time.Millisecond, func() { fired++ })

	d.tick(60 * time.Millisecond)
	if fired != 0 || !d.pending() {
		t.Fatalf("fired early: fired=%d pending=%v", fired, d.pending())
	}
	d.tick(40 * time.Millisecond)
	if fired != 1 || d.pending() {
		t.Fatalf("fired=%d pending=%v, want 1, false", fired, d.pending())
	}
	d.tick(time.Second)
	if fired != 1 {
		t.Errorf("fired again: %d", fired)
	}
}

func TestDeferred_Cancel(t *testing.T) {
	fired := false
	var d deferred
	d.schedule(10*time.Millisecond, func() { fired = true })
	d.cancel()
	d.tick(time.Second)
	if fired || d.pending() {
		t.Error("cancelled action ran")
	}
}

func TestDeferred_RescheduleReplaces(t *testing.T) {
	var got []string
	var d deferred
	d.schedule(50*time.Millisecond, func() { got = append(got, "first") })
	d.tick(40 * time.Millisecond)
	d.schedule(50*time.Millisecond, func() { got = append(got, "second") })
	d.tick(40 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	d.tick(10 * time.Millisecond)
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("fired %v, want [second]", got)
	}
}

func TestDeferred_ImmediateWhenNoDelay(t *testing.T) {
	fired := false
	var d deferred
	d.schedule(0, func() { fired = true })
	if !fired || d.pending() {
		t.Error("zero delay did not fire at once")
	}
}
