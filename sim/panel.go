// Package sim is an in-memory Simon panel. It reproduces the expander's
// interrupt behaviour closely enough to exercise the real reader, and is
// what the terminal simulator and the tests drive.
package sim

import (
	"sync"
	"time"

	"simon/core"
)

// LampOp records one lamp call
type LampOp struct {
	All   bool
	Color core.Color
	On    bool
}

// Panel is a simulated lamp/button panel. Safe for concurrent use.
//
// The interrupt latches on a press and stays asserted while any button is
// held: reading the capture value clears the latch, which re-asserts
// immediately if a button is still down.
type Panel struct {
	mu sync.Mutex

	lamps   [core.NumColors]bool
	history []LampOp

	held    uint8
	capture uint8
	latched bool

	fault    error
	onChange func()
}

// NewPanel creates a panel with every lamp off and no buttons held
func NewPanel() *Panel {
	return &Panel{}
}

// OnChange registers fn to be called after every lamp change.
// It runs on the caller's goroutine with no lock held.
func (p *Panel) OnChange(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// Fail makes every subsequent call return err; nil restores the panel
func (p *Panel) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fault = err
}

func (p *Panel) SetLamp(c core.Color, on bool) error {
	p.mu.Lock()
	if p.fault != nil {
		defer p.mu.Unlock()
		return p.fault
	}
	p.lamps[c] = on
	p.history = append(p.history, LampOp{Color: c, On: on})
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

func (p *Panel) AllLamps(on bool) error {
	p.mu.Lock()
	if p.fault != nil {
		defer p.mu.Unlock()
		return p.fault
	}
	for i := range p.lamps {
		p.lamps[i] = on
	}
	p.history = append(p.history, LampOp{All: true, On: on})
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

func (p *Panel) InterruptAsserted() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fault != nil {
		return false, p.fault
	}
	return p.latched, nil
}

func (p *Panel) ReadCapture() (uint8, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fault != nil {
		return 0, p.fault
	}
	p.latched = p.held != 0
	return p.capture, nil
}

// Press pushes a button down
func (p *Panel) Press(c core.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held |= c.Mask()
	p.capture = c.Mask()
	p.latched = true
}

// Release lets a button go. Releases do not raise an interrupt.
func (p *Panel) Release(c core.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held &^= c.Mask()
}

// Tap presses c and releases it after hold without blocking the caller
func (p *Panel) Tap(c core.Color, hold time.Duration) {
	p.Press(c)
	time.AfterFunc(hold, func() { p.Release(c) })
}

// Noise latches an interrupt with an arbitrary capture value, as a glitch
// on the button lines would
func (p *Panel) Noise(mask uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.capture = mask
	p.latched = true
}

// Lamps returns the current lamp states indexed by color
func (p *Panel) Lamps() [core.NumColors]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lamps
}

// History returns every lamp call so far
func (p *Panel) History() []LampOp {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]LampOp(nil), p.history...)
}

// ClearHistory forgets the recorded lamp calls
func (p *Panel) ClearHistory() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = nil
}
