// Package serial mirrors the host's log stream to a serial console, e.g. a
// scoreboard display or a bench terminal next to the panel.
package serial

import (
	"io"
)

// Port is a writable serial console.
// The native implementation uses github.com/tarm/serial; tests substitute
// an in-memory port.
type Port interface {
	io.WriteCloser
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyAMA0", "/dev/ttyUSB0")
	Device string

	// Baud rate
	Baud int
}

// DefaultConfig returns a default configuration for device
func DefaultConfig(device string) *Config {
	return &Config{
		Device: device,
		Baud:   115200,
	}
}

// Mirror returns a writer that copies everything written to primary onto
// the console as well. A console write failure closes the console and
// mirroring stops; primary keeps receiving output.
func Mirror(primary io.Writer, console Port) io.Writer {
	if console == nil {
		return primary
	}
	return &mirror{primary: primary, console: console}
}

type mirror struct {
	primary io.Writer
	console Port
}

func (m *mirror) Write(p []byte) (int, error) {
	if m.console != nil {
		if _, err := m.console.Write(p); err != nil {
			m.console.Close()
			m.console = nil
		}
	}
	return m.primary.Write(p)
}
