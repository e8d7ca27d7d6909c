package runtime

import (
	"context"
	"testing"
	"time"
)

func collect(msgs *[]Message) PostFunc {
	return func(msg Message) bool {
		*msgs = append(*msgs, msg)
		return true
	}
}

func TestAfter_PostsTimerMsg(t *testing.T) {
	var got []Message
	After(time.Millisecond, TimerMsg{ID: 7}).Run(context.Background(), collect(&got))
	if len(got) != 1 || got[0] != (TimerMsg{ID: 7}) {
		t.Fatalf("expected the timer message, got %v", got)
	}
}

func TestAfter_CancelledContextDrops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var got []Message
	After(time.Hour, TimerMsg{ID: 1}).Run(ctx, collect(&got))
	if len(got) != 0 {
		t.Fatalf("expected nothing after cancel, got %v", got)
	}
}

func TestAfter_NonPositiveDelayPostsAtOnce(t *testing.T) {
	var got []Message
	After(-time.Second, QueueFlushMsg{}).Run(context.Background(), collect(&got))
	After(0, nil).Run(context.Background(), collect(&got))
	if len(got) != 1 {
		t.Fatalf("expected one immediate post and a skipped nil, got %v", got)
	}
}

func TestEvery_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	done := make(chan struct{})
	go func() {
		Every(time.Millisecond, func(time.Time) Message {
			ticks++
			if ticks == 3 {
				cancel()
			}
			if ticks%2 == 0 {
				return nil
			}
			return TickMsg{}
		}).Run(ctx, func(Message) bool { return true })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Every did not stop after cancel")
	}
	if ticks < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", ticks)
	}
}

func TestEvery_InvalidArgumentsReturn(t *testing.T) {
	var got []Message
	Every(0, func(time.Time) Message { return TickMsg{} }).Run(context.Background(), collect(&got))
	Every(time.Millisecond, nil).Run(context.Background(), collect(&got))
	if len(got) != 0 {
		t.Fatalf("expected no posts, got %v", got)
	}
}
