package core

import (
	"context"
	"time"
)

// Game and reader timings. Playback is deliberately slower than the
// feedback blink, and the press timeout covers a human reaction.
const (
	PollInterval   = 100 * time.Millisecond // interrupt poll period
	SettleInterval = 100 * time.Millisecond // debounce settle after a press

	RoundDelay   = 2 * time.Second        // pause before each round
	PlaybackLead = 500 * time.Millisecond // dark pause before playback
	PlaybackOn   = 1 * time.Second        // lamp on time during playback
	PlaybackOff  = 200 * time.Millisecond // gap between playback lamps
	FeedbackOn   = 500 * time.Millisecond // blink after a correct press
	PressTimeout = 5 * time.Second        // per-press wait

	FailFlashes  = 3
	FailFlashOn  = 1 * time.Second
	FailFlashOff = 200 * time.Millisecond

	WelcomeStep = 1 * time.Second        // idle light show, per lamp
	StartStep   = 250 * time.Millisecond // quick show after the start press

	EventQueueSize = 10
)

// Timing groups the durations used by the reader and the game.
// Production code always runs with DefaultTiming; tests scale it down.
type Timing struct {
	Poll   time.Duration
	Settle time.Duration

	RoundDelay   time.Duration
	PlaybackLead time.Duration
	PlaybackOn   time.Duration
	PlaybackOff  time.Duration
	FeedbackOn   time.Duration
	PressTimeout time.Duration

	FailFlashes  int
	FailFlashOn  time.Duration
	FailFlashOff time.Duration

	WelcomeStep time.Duration
	StartStep   time.Duration
}

// DefaultTiming returns the fixed game timings
func DefaultTiming() Timing {
	return Timing{
		Poll:         PollInterval,
		Settle:       SettleInterval,
		RoundDelay:   RoundDelay,
		PlaybackLead: PlaybackLead,
		PlaybackOn:   PlaybackOn,
		PlaybackOff:  PlaybackOff,
		FeedbackOn:   FeedbackOn,
		PressTimeout: PressTimeout,
		FailFlashes:  FailFlashes,
		FailFlashOn:  FailFlashOn,
		FailFlashOff: FailFlashOff,
		WelcomeStep:  WelcomeStep,
		StartStep:    StartStep,
	}
}

// withDefaults fills zero fields from DefaultTiming
func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	fill := func(v *time.Duration, def time.Duration) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&t.Poll, d.Poll)
	fill(&t.Settle, d.Settle)
	fill(&t.RoundDelay, d.RoundDelay)
	fill(&t.PlaybackLead, d.PlaybackLead)
	fill(&t.PlaybackOn, d.PlaybackOn)
	fill(&t.PlaybackOff, d.PlaybackOff)
	fill(&t.FeedbackOn, d.FeedbackOn)
	fill(&t.PressTimeout, d.PressTimeout)
	fill(&t.FailFlashOn, d.FailFlashOn)
	fill(&t.FailFlashOff, d.FailFlashOff)
	fill(&t.WelcomeStep, d.WelcomeStep)
	fill(&t.StartStep, d.StartStep)
	if t.FailFlashes == 0 {
		t.FailFlashes = d.FailFlashes
	}
	return t
}

// sleep suspends the caller for d, returning early with ctx.Err() if the
// context ends first. Every delay in the engine goes through here so the
// other task gets to run.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
