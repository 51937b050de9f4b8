package core

import (
	"sync"
	"time"
)

// lampOp is one recorded lamp call
type lampOp struct {
	all   bool
	color Color
	on    bool
}

// MockPanel is a test Panel that records lamp calls and emulates a
// latched interrupt line
type MockPanel struct {
	mu sync.Mutex

	lamps [NumColors]bool
	ops   []lampOp

	latched bool
	held    uint8
	capture uint8
	reads   int

	lampErr error
	busErr  error
}

func NewMockPanel() *MockPanel {
	return &MockPanel{}
}

func (m *MockPanel) SetLamp(c Color, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lampErr != nil {
		return m.lampErr
	}
	m.lamps[c] = on
	m.ops = append(m.ops, lampOp{color: c, on: on})
	return nil
}

func (m *MockPanel) AllLamps(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lampErr != nil {
		return m.lampErr
	}
	for i := range m.lamps {
		m.lamps[i] = on
	}
	m.ops = append(m.ops, lampOp{all: true, on: on})
	return nil
}

func (m *MockPanel) InterruptAsserted() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busErr != nil {
		return false, m.busErr
	}
	return m.latched, nil
}

func (m *MockPanel) ReadCapture() (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busErr != nil {
		return 0, m.busErr
	}
	m.reads++
	m.latched = m.held != 0
	return m.capture, nil
}

// press latches the interrupt with mask as the capture value
func (m *MockPanel) press(mask uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held |= mask
	m.capture = mask
	m.latched = true
}

func (m *MockPanel) release(mask uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held &^= mask
}

// tap presses and releases mask, holding it for hold
func (m *MockPanel) tap(mask uint8, hold time.Duration) {
	m.press(mask)
	time.Sleep(hold)
	m.release(mask)
}

func (m *MockPanel) history() []lampOp {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]lampOp(nil), m.ops...)
}

func (m *MockPanel) resetHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = nil
}

func (m *MockPanel) lampState() [NumColors]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lamps
}

// singleLampPairs extracts the order of single-lamp on/off pairs from ops
func singleLampPairs(ops []lampOp) (pairs []Color, ok bool) {
	var lit *Color
	for _, op := range ops {
		if op.all {
			continue
		}
		c := op.color
		if op.on {
			if lit != nil {
				return pairs, false
			}
			lit = &c
			continue
		}
		if lit == nil || *lit != c {
			return pairs, false
		}
		pairs = append(pairs, c)
		lit = nil
	}
	return pairs, lit == nil
}

// fastTiming keeps game tests quick while preserving the proportions
func fastTiming() Timing {
	return Timing{
		Poll:         2 * time.Millisecond,
		Settle:       5 * time.Millisecond,
		RoundDelay:   time.Millisecond,
		PlaybackLead: time.Millisecond,
		PlaybackOn:   4 * time.Millisecond,
		PlaybackOff:  time.Millisecond,
		FeedbackOn:   2 * time.Millisecond,
		PressTimeout: 150 * time.Millisecond,
		FailFlashes:  3,
		FailFlashOn:  2 * time.Millisecond,
		FailFlashOff: time.Millisecond,
		WelcomeStep:  time.Millisecond,
		StartStep:    time.Millisecond,
	}
}
