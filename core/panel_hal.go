package core

// LampPanel is the output half of the panel: one lamp per color.
// Both calls are synchronous and idempotent.
type LampPanel interface {
	// SetLamp turns a single lamp on or off, leaving the others alone
	SetLamp(c Color, on bool) error

	// AllLamps turns every lamp on or off
	AllLamps(on bool) error
}

// ButtonPanel is the input half of the panel.
type ButtonPanel interface {
	// InterruptAsserted polls the edge-triggered interrupt indicator
	InterruptAsserted() (bool, error)

	// ReadCapture returns the bitmask of the button line that most
	// recently changed. Reading it acknowledges the interrupt.
	ReadCapture() (uint8, error)
}

// Panel is the lamp/button device the engine drives.
// Platform code (expander driver, simulator) implements it; the reader
// only touches the ButtonPanel half and the game only the LampPanel half,
// so the two tasks never share registers.
type Panel interface {
	LampPanel
	ButtonPanel
}
