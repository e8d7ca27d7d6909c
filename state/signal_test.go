package state

import "testing"

func TestSignal_SetAndSubscribe(t *testing.T) {
	sig := NewSignal(1)
	calls := 0
	unsub := sig.Subscribe(func() { calls++ })

	if !sig.Set(2) || calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}
	if sig.Get() != 2 {
		t.Fatalf("expected 2, got %d", sig.Get())
	}

	unsub()
	unsub()
	sig.Set(3)
	if calls != 1 || sig.Subscribers() != 0 {
		t.Fatalf("expected no calls after unsubscribe, got %d (%d subscribers)", calls, sig.Subscribers())
	}
}

func TestSignal_WithoutEqualAlwaysNotifies(t *testing.T) {
	sig := NewSignal("idle")
	calls := 0
	sig.Subscribe(func() { calls++ })
	sig.Set("idle")
	if calls != 1 {
		t.Fatalf("expected a plain signal to notify on equal values, got %d", calls)
	}
}

func TestSignal_ComparableSkipsEqualValues(t *testing.T) {
	sig := NewComparable("")
	calls := 0
	sig.Subscribe(func() { calls++ })
	if sig.Set("") {
		t.Fatalf("expected set of equal value to report no change")
	}
	if !sig.Set("a") || calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}
	sig.SetEqualFunc(nil)
	if !sig.Set("a") {
		t.Fatalf("expected clearing the equal func to notify again")
	}
}

func TestSignal_NotifiesInSubscriptionOrder(t *testing.T) {
	sig := NewComparable(0)
	var order []int
	for i := range 5 {
		sig.Subscribe(func() { order = append(order, i) })
	}
	sig.Set(1)
	for i, got := range order {
		if got != i {
			t.Fatalf("expected subscription order, got %v", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("expected 5 notifications, got %v", order)
	}
}

func TestSignal_CallbackMaySetAgain(t *testing.T) {
	sig := NewComparable(0)
	var seen []int
	sig.Subscribe(func() {
		v := sig.Get()
		seen = append(seen, v)
		if v < 3 {
			sig.Set(v + 1)
		}
	})
	sig.Set(1)
	if sig.Get() != 3 || len(seen) != 3 {
		t.Fatalf("expected chained sets to settle at 3, got %d after %v", sig.Get(), seen)
	}
}

func TestSignal_UnsubscribeDuringNotify(t *testing.T) {
	sig := NewComparable(0)
	calls := 0
	var unsub func()
	unsub = sig.Subscribe(func() {
		calls++
		unsub()
	})
	other := 0
	sig.Subscribe(func() { other++ })

	sig.Set(1)
	sig.Set(2)
	if calls != 1 || other != 2 {
		t.Fatalf("expected self-removing subscriber once and the other twice, got %d %d", calls, other)
	}
}

func TestSignal_Scheduler(t *testing.T) {
	sig := NewComparable("idle")
	queue := NewQueue()
	calls := 0
	sig.SubscribeWithScheduler(queue, func() { calls++ })
	sig.Set("showing-labels")
	if calls != 0 || queue.Len() != 1 {
		t.Fatalf("expected the callback queued, got calls=%d len=%d", calls, queue.Len())
	}
	queue.Flush()
	if calls != 1 {
		t.Fatalf("expected callback after flush, got %d", calls)
	}
}

func TestSignal_NilReceiver(t *testing.T) {
	var sig *Signal[int]
	if sig.Get() != 0 || sig.Set(1) || sig.Subscribers() != 0 {
		t.Fatalf("nil signal must be inert")
	}
	sig.Subscribe(func() {})()
}
