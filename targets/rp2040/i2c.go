//go:build rp2040

package main

import (
	"machine"

	"simon/mcp23008"
)

// Panel wiring on the Pico
const (
	pinSDA = machine.GPIO4
	pinSCL = machine.GPIO5
	pinINT = machine.GPIO2

	i2cFrequency = 400 * machine.KHz
)

// configureBus brings up I2C0 on the panel pins.
// machine.I2C satisfies drivers.I2C, so the bus is handed straight to the
// expander driver.
func configureBus() (*machine.I2C, error) {
	bus := machine.I2C0
	err := bus.Configure(machine.I2CConfig{
		Frequency: i2cFrequency,
		SDA:       pinSDA,
		SCL:       pinSCL,
	})
	if err != nil {
		return nil, err
	}
	return bus, nil
}

// configureInterrupt sets up the expander's INT pin.
// INT is open-drain and active low, so the line idles high on the pull-up.
func configureInterrupt(pin machine.Pin) mcp23008.InterruptLine {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return func() bool { return !pin.Get() }
}
