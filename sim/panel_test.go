package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"simon/core"
)

func TestInterruptLatch(t *testing.T) {
	p := NewPanel()

	if asserted, _ := p.InterruptAsserted(); asserted {
		t.Fatal("Expected idle interrupt line")
	}

	p.Press(core.Yellow)
	p.Release(core.Yellow)
	// A tap shorter than a poll must still be seen
	if asserted, _ := p.InterruptAsserted(); !asserted {
		t.Fatal("Expected interrupt latched by a quick tap")
	}
	mask, err := p.ReadCapture()
	if err != nil {
		t.Fatalf("ReadCapture failed: %v", err)
	}
	if mask != core.YellowMask {
		t.Errorf("Expected yellow mask, got %#02x", mask)
	}
	if asserted, _ := p.InterruptAsserted(); asserted {
		t.Error("Expected reading the capture to clear the interrupt")
	}
}

func TestInterruptHeld(t *testing.T) {
	p := NewPanel()
	p.Press(core.Blue)

	for i := 0; i < 3; i++ {
		p.ReadCapture()
		if asserted, _ := p.InterruptAsserted(); !asserted {
			t.Fatalf("Read %d: expected interrupt to re-assert while held", i)
		}
	}
	p.Release(core.Blue)
	p.ReadCapture()
	if asserted, _ := p.InterruptAsserted(); asserted {
		t.Error("Expected interrupt clear after release")
	}
}

func TestLamps(t *testing.T) {
	p := NewPanel()
	changes := 0
	p.OnChange(func() { changes++ })

	p.SetLamp(core.Red, true)
	p.AllLamps(false)
	p.AllLamps(false)

	if p.Lamps() != [core.NumColors]bool{} {
		t.Errorf("Expected all lamps off, got %v", p.Lamps())
	}
	if changes != 3 {
		t.Errorf("Expected 3 change callbacks, got %d", changes)
	}
	h := p.History()
	if len(h) != 3 || h[0].All || h[0].Color != core.Red || !h[0].On {
		t.Errorf("Unexpected history %+v", h)
	}
	p.ClearHistory()
	if len(p.History()) != 0 {
		t.Error("Expected empty history")
	}
}

func TestFault(t *testing.T) {
	p := NewPanel()
	boom := errors.New("boom")
	p.Fail(boom)

	if err := p.SetLamp(core.Red, true); !errors.Is(err, boom) {
		t.Errorf("SetLamp: expected boom, got %v", err)
	}
	if _, err := p.InterruptAsserted(); !errors.Is(err, boom) {
		t.Errorf("InterruptAsserted: expected boom, got %v", err)
	}
	p.Fail(nil)
	if err := p.AllLamps(true); err != nil {
		t.Errorf("Expected panel restored, got %v", err)
	}
}

// The real reader over the simulated panel: one event per tap, noise dropped
func TestReaderOverSimPanel(t *testing.T) {
	p := NewPanel()
	events := core.NewEventChannel(core.EventQueueSize)
	reader := core.NewButtonReader(p, events, core.ReaderConfig{
		Poll:   2 * time.Millisecond,
		Settle: 5 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reader.Run(ctx) }()

	p.Tap(core.Red, 10*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	p.Noise(0x06)
	time.Sleep(40 * time.Millisecond)
	p.Tap(core.Green, 10*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	cancel()
	<-done

	var got []core.Color
	for events.Len() > 0 {
		c, _ := events.Consume(context.Background())
		got = append(got, c)
	}
	if len(got) != 2 || got[0] != core.Red || got[1] != core.Green {
		t.Errorf("Expected [red green], got %v", got)
	}
}
