// Command simon-pi runs the Simon game on a Linux board (Raspberry Pi)
// with the panel's MCP23008 on the I2C bus.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"simon/core"
	"simon/host/config"
	"simon/host/serial"
	"simon/mcp23008"
)

var (
	configPath = flag.String("config", "", "YAML config file (defaults apply when empty)")
	busName    = flag.String("bus", "", "I2C bus name, overrides the config file")
	verbose    = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *busName != "" {
		cfg.Bus = *busName
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	var console serial.Port
	if cfg.Console.Device != "" {
		var err error
		console, err = serial.Open(&serial.Config{Device: cfg.Console.Device, Baud: cfg.Console.Baud})
		if err != nil {
			return err
		}
		defer console.Close()
	}
	out := zerolog.SyncWriter(zerolog.ConsoleWriter{
		Out:     serial.Mirror(os.Stderr, console),
		NoColor: console != nil,
	})
	rootLogger := core.NewLogger(out, cfg.Debug())
	logger := rootLogger.With().Str(core.LogKey.Module, "Main").Logger()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return fmt.Errorf("open I2C bus %q: %w", cfg.Bus, err)
	}
	defer bus.Close()

	var irq mcp23008.InterruptLine
	if cfg.Interrupt != "" {
		pin := gpioreg.ByName(cfg.Interrupt)
		if pin == nil {
			return fmt.Errorf("unknown interrupt pin %q", cfg.Interrupt)
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return fmt.Errorf("configure interrupt pin %s: %w", cfg.Interrupt, err)
		}
		// INT is open-drain, active low
		irq = func() bool { return pin.Read() == gpio.Low }
	} else {
		logger.Info().Msg("No interrupt pin configured, polling INTF over the bus")
	}

	dev := mcp23008.New(bus)
	if err := dev.Configure(mcp23008.Config{Address: cfg.Address}); err != nil {
		return err
	}
	panel := mcp23008.NewPanel(dev, irq, &rootLogger)
	logger.Info().Str("bus", bus.String()).Uint16("address", dev.Address()).Msg("MCP23008 initialized")

	sched, _ := core.NewEngine(panel, core.GameConfig{Logger: &rootLogger})

	logger.Info().Msg("Running until interrupted")
	err = sched.Run(ctx)

	// Leave the panel dark whatever happened
	if offErr := panel.AllLamps(false); offErr != nil && err == nil {
		err = offErr
	}
	if err != nil {
		return err
	}
	logger.Info().Msg("Done")
	return nil
}
