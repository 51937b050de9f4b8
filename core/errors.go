package core

import "errors"

var (
	// ErrUnknownButton is reported when a capture value does not match
	// exactly one button line. The reader logs and discards it.
	ErrUnknownButton = errors.New("unknown button code")

	// ErrTimeout is returned by ConsumeTimeout when no press arrived in time.
	// The game treats it as a wrong answer.
	ErrTimeout = errors.New("timed out waiting for button press")
)

// DeviceFault wraps a failed panel bus transaction.
// It is fatal: the task that hit it stops and the scheduler ends the run.
type DeviceFault struct {
	Op  string
	Err error
}

func (e *DeviceFault) Error() string {
	return "device fault: " + e.Op + ": " + e.Err.Error()
}

func (e *DeviceFault) Unwrap() error {
	return e.Err
}

// deviceFault wraps err as a DeviceFault unless it is nil or already one
func deviceFault(op string, err error) error {
	if err == nil {
		return nil
	}
	var fault *DeviceFault
	if errors.As(err, &fault) {
		return err
	}
	return &DeviceFault{Op: op, Err: err}
}

// IsDeviceFault reports whether err carries a DeviceFault
func IsDeviceFault(err error) bool {
	var fault *DeviceFault
	return errors.As(err, &fault)
}
