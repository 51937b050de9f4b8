package core

import (
	"io"

	"github.com/rs/zerolog"
)

// LogKey names the structured fields shared by every component
var LogKey = struct {
	Module string
	Color  string
	Mask   string
	State  string
	Score  string
	Length string
	Task   string
}{
	Module: "module",
	Color:  "color",
	Mask:   "mask",
	State:  "state",
	Score:  "score",
	Length: "length",
	Task:   "task",
}

// NewLogger builds the root logger writing to w.
// Debug enables register and queue traffic, which is noisy on a real bus.
func NewLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// moduleLogger derives a component logger, tolerating a zero Logger
func moduleLogger(log *zerolog.Logger, module string) zerolog.Logger {
	if log == nil {
		return zerolog.Nop()
	}
	return log.With().Str(LogKey.Module, module).Logger()
}
