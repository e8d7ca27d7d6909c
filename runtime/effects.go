package runtime

import (
	"context"
	"time"
)

// After posts msg once delay has elapsed, or immediately for a non-positive
// delay. Cancelling the context drops the message.
func After(delay time.Duration, msg Message) Effect {
	return Effect{Run: func(ctx context.Context, post PostFunc) {
		if msg == nil || post == nil {
			return
		}
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
		post(msg)
	}}
}

// Every posts fn's message on each interval until the context ends.
// A nil message is skipped.
func Every(interval time.Duration, fn func(time.Time) Message) Effect {
	return Effect{Run: func(ctx context.Context, post PostFunc) {
		if interval <= 0 || fn == nil || post == nil {
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if msg := fn(now); msg != nil {
					post(msg)
				}
			}
		}
	}}
}
