package runtime

import "testing"

func countingPost(ok bool, posted *int) func(Message) bool {
	return func(msg Message) bool {
		if _, is := msg.(InvalidateMsg); is {
			*posted++
		}
		return ok
	}
}

func TestInvalidator_BurstSharesOneMessage(t *testing.T) {
	posted := 0
	inv := NewInvalidator(countingPost(true, &posted))
	for range 3 {
		inv.Invalidate()
	}
	if posted != 1 {
		t.Fatalf("expected one InvalidateMsg for the burst, got %d", posted)
	}
	if n := inv.take(); n != 3 {
		t.Fatalf("expected 3 coalesced requests, got %d", n)
	}
	inv.Invalidate()
	if posted != 2 {
		t.Fatalf("expected a fresh message after take, got %d", posted)
	}
}

func TestInvalidator_FailedPostRetries(t *testing.T) {
	posted := 0
	inv := NewInvalidator(countingPost(false, &posted))
	inv.Invalidate()
	inv.Invalidate()
	if posted != 2 {
		t.Fatalf("expected each request to retry a dropped post, got %d", posted)
	}
	if n := inv.take(); n != 0 {
		t.Fatalf("expected no pending requests after failed posts, got %d", n)
	}
}

func TestInvalidator_ScheduleRunsInline(t *testing.T) {
	posted := 0
	inv := NewInvalidator(countingPost(true, &posted))
	ran := false
	inv.Schedule(func() { ran = true })
	inv.Schedule(nil)
	if !ran || posted != 1 {
		t.Fatalf("expected inline run and one post, got ran=%v posted=%d", ran, posted)
	}
}

func TestInvalidator_NilSafe(t *testing.T) {
	var inv *Invalidator
	inv.Invalidate()
	if inv.take() != 0 {
		t.Fatalf("nil invalidator must report nothing")
	}
	NewInvalidator(nil).Invalidate()
}
