package core

import (
	"context"
	"time"
)

// EventChannel is the bounded FIFO between the button reader (sole writer)
// and the game (sole reader).
//
// A full channel blocks the publisher rather than dropping events, so every
// press reaches the game in the order it was detected.
type EventChannel struct {
	ch chan Color
}

// NewEventChannel creates a channel holding at most capacity pending presses
func NewEventChannel(capacity int) *EventChannel {
	if capacity <= 0 {
		capacity = EventQueueSize
	}
	return &EventChannel{ch: make(chan Color, capacity)}
}

// Publish appends c at the tail, suspending while the channel is full
func (e *EventChannel) Publish(ctx context.Context, c Color) error {
	select {
	case e.ch <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume removes and returns the head, suspending while the channel is empty
func (e *EventChannel) Consume(ctx context.Context) (Color, error) {
	select {
	case c := <-e.ch:
		return c, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// ConsumeTimeout is Consume bounded by d. When nothing arrives in time it
// returns ErrTimeout and the channel is left untouched.
func (e *EventChannel) ConsumeTimeout(ctx context.Context, d time.Duration) (Color, error) {
	// Prefer an event that is already waiting, even with a zero timeout
	select {
	case c := <-e.ch:
		return c, nil
	default:
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case c := <-e.ch:
		return c, nil
	case <-timer.C:
		return 0, ErrTimeout
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Len returns the number of pending presses
func (e *EventChannel) Len() int {
	return len(e.ch)
}

// Cap returns the channel capacity
func (e *EventChannel) Cap() int {
	return cap(e.ch)
}
