package state

import (
	"testing"
	"time"
)

func TestManualTimers_FiresOnce(t *testing.T) {
	timers := NewManualTimers()
	calls := 0
	timers.ScheduleOnce(200*time.Millisecond, func() { calls++ })

	if fired := timers.Advance(100 * time.Millisecond); fired != 0 {
		t.Fatalf("expected nothing due yet, got %d", fired)
	}
	if fired := timers.Advance(100 * time.Millisecond); fired != 1 {
		t.Fatalf("expected 1 callback, got %d", fired)
	}
	timers.Advance(time.Second)
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}

func TestManualTimers_CancelBeforeFire(t *testing.T) {
	timers := NewManualTimers()
	calls := 0
	cancel := timers.ScheduleOnce(10*time.Millisecond, func() { calls++ })
	if !cancel() {
		t.Fatalf("expected cancel to report prevention")
	}
	if cancel() {
		t.Fatalf("expected second cancel to be a no-op")
	}
	timers.Advance(time.Second)
	if calls != 0 || timers.Pending() != 0 {
		t.Fatalf("expected cancelled timer never to fire, calls=%d pending=%d", calls, timers.Pending())
	}
}

func TestManualTimers_CancelAfterFire(t *testing.T) {
	timers := NewManualTimers()
	cancel := timers.ScheduleOnce(0, func() {})
	timers.Advance(0)
	if cancel() {
		t.Fatalf("expected cancel after fire to report false")
	}
}
