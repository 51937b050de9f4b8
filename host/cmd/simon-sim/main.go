// Command simon-sim plays Simon in a terminal against a simulated panel.
// The real reader and game run unchanged; only the hardware is simulated.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"simon/core"
	"simon/sim"
)

var (
	seed  = flag.Uint64("seed", 0, "Fixed color seed (0 seeds from the clock)")
	debug = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	panel := sim.NewPanel()
	v := newView(panel)

	logger := core.NewLogger(zerolog.SyncWriter(zerolog.ConsoleWriter{
		Out:        v.log,
		NoColor:    true,
		TimeFormat: "15:04:05.000",
	}), *debug)

	cfg := core.GameConfig{
		Logger:   &logger,
		OnStatus: v.setStatus,
	}
	if *seed != 0 {
		s := *seed
		cfg.Seed = func() uint64 { return s }
	}
	sched, _ := core.NewEngine(panel, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	runErr := make(chan error, 1)
	go v.refresh(done)
	go func() {
		err := sched.Run(ctx)
		runErr <- err
		if err != nil {
			// Nothing left to play; drop out of the UI
			v.app.Stop()
		}
	}()

	uiErr := v.app.Run()
	close(done)
	cancel()
	err := <-runErr

	if uiErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", uiErr)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
