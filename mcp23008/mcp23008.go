// Package mcp23008 drives the MCP23008 8-bit I2C GPIO expander that
// carries the Simon panel's buttons and lamps.
//
// Datasheet: https://ww1.microchip.com/downloads/en/DeviceDoc/MCP23008-MCP23S08-Data-Sheet-20001919F.pdf
package mcp23008

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// Device is an MCP23008 on an I2C bus
type Device struct {
	bus  drivers.I2C
	addr uint16
}

// Config selects the expander's pin roles.
// Bits set in Inputs are buttons; the rest are lamp outputs.
type Config struct {
	Address uint8
	Inputs  uint8
}

// New creates a driver on an already configured I2C bus.
// Configure must be called before use.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:  bus,
		addr: DefaultAddress,
	}
}

// Configure programs the expander: inputs inverted with pull-ups and
// interrupt-on-change against DEFVAL (so INT stays asserted while a button
// is held), open-drain INT, and every output driven low.
func (d *Device) Configure(c Config) error {
	if c.Address == 0 {
		c.Address = DefaultAddress
	}
	if c.Inputs == 0 {
		c.Inputs = ButtonBits
	}
	d.addr = uint16(c.Address)

	steps := []struct {
		reg, val uint8
	}{
		{IODIR, c.Inputs},
		{IPOL, c.Inputs},
		{GPPU, c.Inputs},
		{IOCON, IOCON_ODR},
		{DEFVAL, 0x00},
		{INTCON, c.Inputs},
		{GPINTEN, c.Inputs},
		{OLAT, 0x00},
	}
	for _, s := range steps {
		if err := d.WriteRegister(s.reg, s.val); err != nil {
			return fmt.Errorf("mcp23008: configure register %#02x: %w", s.reg, err)
		}
	}

	// Clear any interrupt latched before configuration
	_, err := d.ReadRegister(INTCAP)
	return err
}

// Address returns the 7-bit bus address in use
func (d *Device) Address() uint16 {
	return d.addr
}

// WriteRegister writes a single register
func (d *Device) WriteRegister(reg, val uint8) error {
	buf := [2]byte{reg, val}
	return d.bus.Tx(d.addr, buf[:], nil)
}

// ReadRegister reads a single register (address write, repeated start, read)
func (d *Device) ReadRegister(reg uint8) (uint8, error) {
	w := [1]byte{reg}
	var r [1]byte
	if err := d.bus.Tx(d.addr, w[:], r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

// Outputs returns the output latch
func (d *Device) Outputs() (uint8, error) {
	return d.ReadRegister(OLAT)
}

// SetOutputs drives the whole port
func (d *Device) SetOutputs(val uint8) error {
	return d.WriteRegister(GPIO, val)
}

// UpdateOutputs sets the bits in set and clears the bits in clear,
// leaving the rest of the latch unchanged
func (d *Device) UpdateOutputs(set, clear uint8) error {
	val, err := d.Outputs()
	if err != nil {
		return err
	}
	return d.SetOutputs((val &^ clear) | set)
}

// Capture returns INTCAP, the port value latched by the last interrupt.
// Reading it releases INT.
func (d *Device) Capture() (uint8, error) {
	return d.ReadRegister(INTCAP)
}

// Flags returns INTF, the pins that caused the pending interrupt
func (d *Device) Flags() (uint8, error) {
	return d.ReadRegister(INTF)
}
