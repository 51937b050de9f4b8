//go:build rp2040

package main

import (
	"context"
	"machine"
	"time"

	"github.com/rs/zerolog"

	"simon/core"
	"simon/mcp23008"
)

// Pause between a failed run and the next attempt
const restartDelay = time.Second

func main() {
	// Disable a watchdog left running by a previous image
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	// Give the USB CDC console a moment to enumerate
	time.Sleep(restartDelay)

	rootLogger := core.NewLogger(machine.Serial, false)
	logger := rootLogger.With().Str(core.LogKey.Module, "Main").Logger()

	irq := configureInterrupt(pinINT)
	for {
		if err := run(context.Background(), irq, &rootLogger); err != nil {
			logger.Error().Err(err).Msg("Run ended, restarting")
		}
		time.Sleep(restartDelay)
	}
}

// run configures the expander and plays until a device fault ends the engine
func run(ctx context.Context, irq mcp23008.InterruptLine, log *zerolog.Logger) error {
	bus, err := configureBus()
	if err != nil {
		return err
	}

	dev := mcp23008.New(bus)
	if err := dev.Configure(mcp23008.Config{Address: mcp23008.DefaultAddress}); err != nil {
		return err
	}
	panel := mcp23008.NewPanel(dev, irq, log)

	sched, _ := core.NewEngine(panel, core.GameConfig{
		Logger: log,
		Seed:   hardwareSeed,
	})
	return sched.Run(ctx)
}

// hardwareSeed draws the game seed from the ROSC-based RNG, falling back to
// the clock when the RNG is unavailable
func hardwareSeed() uint64 {
	hi, err := machine.GetRNG()
	if err != nil {
		return uint64(time.Now().UnixNano())
	}
	lo, err := machine.GetRNG()
	if err != nil {
		return uint64(time.Now().UnixNano())
	}
	return uint64(hi)<<32 | uint64(lo)
}
