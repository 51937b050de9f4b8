package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

// startReader runs a reader in the background and returns a stop func
// that cancels it and reports its result
func startReader(t *testing.T, panel ButtonPanel, events *EventChannel) (*ButtonReader, func() error) {
	t.Helper()
	timing := fastTiming()
	reader := NewButtonReader(panel, events, ReaderConfig{Poll: timing.Poll, Settle: timing.Settle})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reader.Run(ctx) }()

	return reader, func() error {
		cancel()
		return <-done
	}
}

func drainEvents(ch *EventChannel) []Color {
	var out []Color
	for {
		c, err := ch.ConsumeTimeout(context.Background(), 0)
		if err != nil {
			return out
		}
		out = append(out, c)
	}
}

func TestReaderOneEventPerPress(t *testing.T) {
	panel := NewMockPanel()
	events := NewEventChannel(EventQueueSize)
	reader, stop := startReader(t, panel, events)

	presses := []Color{Red, Yellow, Blue, Blue, Green}
	for _, c := range presses {
		panel.tap(c.Mask(), 15*time.Millisecond)
		time.Sleep(30 * time.Millisecond)
	}

	if err := stop(); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	got := drainEvents(events)
	if len(got) != len(presses) {
		t.Fatalf("Expected %d events, got %d: %v", len(presses), len(got), got)
	}
	for i := range presses {
		if got[i] != presses[i] {
			t.Errorf("Event %d: expected %v, got %v", i, presses[i], got[i])
		}
	}
	published, discarded := reader.Stats()
	if published != uint32(len(presses)) || discarded != 0 {
		t.Errorf("Expected stats %d/0, got %d/%d", len(presses), published, discarded)
	}
}

func TestReaderHeldButton(t *testing.T) {
	panel := NewMockPanel()
	events := NewEventChannel(EventQueueSize)
	_, stop := startReader(t, panel, events)

	// Held well past the settle interval; the line keeps re-asserting
	panel.tap(Green.Mask(), 80*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	stop()

	got := drainEvents(events)
	if len(got) != 1 || got[0] != Green {
		t.Errorf("Expected a single green event, got %v", got)
	}
	if panel.reads < 2 {
		t.Errorf("Expected the capture register to be drained while held, got %d reads", panel.reads)
	}
}

func TestReaderBounce(t *testing.T) {
	panel := NewMockPanel()
	events := NewEventChannel(EventQueueSize)
	_, stop := startReader(t, panel, events)

	// Contact bounce: several edges inside the settle window
	for i := 0; i < 4; i++ {
		panel.press(Yellow.Mask())
		time.Sleep(500 * time.Microsecond)
		panel.release(Yellow.Mask())
	}
	time.Sleep(40 * time.Millisecond)
	stop()

	got := drainEvents(events)
	if len(got) != 1 || got[0] != Yellow {
		t.Errorf("Expected a single yellow event, got %v", got)
	}
}

func TestReaderUnknownKey(t *testing.T) {
	panel := NewMockPanel()
	events := NewEventChannel(EventQueueSize)
	reader, stop := startReader(t, panel, events)

	panel.tap(RedMask|BlueMask, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	panel.tap(Red.Mask(), 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if err := stop(); !errors.Is(err, context.Canceled) {
		t.Fatalf("Reader should survive unknown keys, got %v", err)
	}

	got := drainEvents(events)
	if len(got) != 1 || got[0] != Red {
		t.Errorf("Expected only the red event, got %v", got)
	}
	_, discarded := reader.Stats()
	if discarded != 1 {
		t.Errorf("Expected 1 discarded capture, got %d", discarded)
	}
}

func TestReaderDeviceFault(t *testing.T) {
	panel := NewMockPanel()
	panel.busErr = errors.New("i2c nack")
	events := NewEventChannel(EventQueueSize)

	reader := NewButtonReader(panel, events, ReaderConfig{Poll: time.Millisecond})
	err := reader.Run(context.Background())
	if !IsDeviceFault(err) {
		t.Fatalf("Expected DeviceFault, got %v", err)
	}
	if !errors.Is(err, panel.busErr) {
		t.Errorf("DeviceFault should wrap the bus error, got %v", err)
	}
}

func TestReaderBackpressure(t *testing.T) {
	panel := NewMockPanel()
	events := NewEventChannel(1)
	_, stop := startReader(t, panel, events)

	panel.tap(Red.Mask(), 2*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	panel.tap(Blue.Mask(), 2*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	// The reader is now parked in Publish; nothing may be lost
	first, err := events.ConsumeTimeout(context.Background(), time.Second)
	if err != nil || first != Red {
		t.Fatalf("Expected red first, got %v (err %v)", first, err)
	}
	second, err := events.ConsumeTimeout(context.Background(), time.Second)
	if err != nil || second != Blue {
		t.Fatalf("Expected blue second, got %v (err %v)", second, err)
	}
	stop()
}
