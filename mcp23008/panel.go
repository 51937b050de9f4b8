package mcp23008

import (
	"github.com/rs/zerolog"

	"simon/core"
)

// InterruptLine reports whether the expander's INT output is asserted.
// Platform code wraps its GPIO pin (the line is active-low and open-drain).
type InterruptLine func() bool

// Panel adapts an expander and its INT line to core.Panel
type Panel struct {
	dev *Device
	irq InterruptLine
	log zerolog.Logger
}

// NewPanel wraps a configured device
func NewPanel(dev *Device, irq InterruptLine, log *zerolog.Logger) *Panel {
	p := &Panel{dev: dev, irq: irq, log: zerolog.Nop()}
	if log != nil {
		p.log = log.With().Str(core.LogKey.Module, "Panel").Logger()
	}
	return p
}

func lampBit(c core.Color) uint8 {
	return c.Mask() << LampShift
}

// SetLamp turns one lamp on or off with a read-modify-write of the latch
func (p *Panel) SetLamp(c core.Color, on bool) error {
	bit := lampBit(c)
	p.log.Debug().Stringer(core.LogKey.Color, c).Bool("on", on).Msg("Set lamp")
	if on {
		return p.dev.UpdateOutputs(bit, 0)
	}
	return p.dev.UpdateOutputs(0, bit)
}

// AllLamps drives every lamp at once
func (p *Panel) AllLamps(on bool) error {
	var val uint8
	if on {
		val = LampBits
	}
	return p.dev.SetOutputs(val)
}

// InterruptAsserted samples the INT line. Without a wired line it falls
// back to polling INTF over the bus.
func (p *Panel) InterruptAsserted() (bool, error) {
	if p.irq != nil {
		return p.irq(), nil
	}
	flags, err := p.dev.Flags()
	if err != nil {
		return false, err
	}
	return flags&ButtonBits != 0, nil
}

// ReadCapture returns the button half of INTCAP
func (p *Panel) ReadCapture() (uint8, error) {
	val, err := p.dev.Capture()
	if err != nil {
		return 0, err
	}
	p.log.Debug().Uint8(core.LogKey.Mask, val).Msg("Capture")
	return val & ButtonBits, nil
}
