package core

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ReaderConfig configures a ButtonReader. Zero durations use the defaults.
type ReaderConfig struct {
	Poll   time.Duration
	Settle time.Duration
	Logger *zerolog.Logger
}

// ButtonReader turns the panel's bouncing interrupt line into one event
// per physical press.
type ButtonReader struct {
	panel  ButtonPanel
	events *EventChannel
	poll   time.Duration
	settle time.Duration
	log    zerolog.Logger

	published uint32
	discarded uint32
}

// NewButtonReader creates a reader publishing into events
func NewButtonReader(panel ButtonPanel, events *EventChannel, cfg ReaderConfig) *ButtonReader {
	if cfg.Poll == 0 {
		cfg.Poll = PollInterval
	}
	if cfg.Settle == 0 {
		cfg.Settle = SettleInterval
	}
	return &ButtonReader{
		panel:  panel,
		events: events,
		poll:   cfg.Poll,
		settle: cfg.Settle,
		log:    moduleLogger(cfg.Logger, "Reader"),
	}
}

// Run polls the panel until ctx ends or the bus faults.
//
// Each detected press is published once; the reader then waits the settle
// interval and keeps acknowledging the interrupt without publishing until
// the line clears.
func (r *ButtonReader) Run(ctx context.Context) error {
	r.log.Info().Msg("Starting button reader")
	for {
		asserted, err := r.panel.InterruptAsserted()
		if err != nil {
			return deviceFault("interrupt poll", err)
		}
		if !asserted {
			if err := sleep(ctx, r.poll); err != nil {
				return err
			}
			continue
		}

		if err := r.capture(ctx); err != nil {
			return err
		}

		if err := sleep(ctx, r.settle); err != nil {
			return err
		}
		if err := r.drain(ctx); err != nil {
			return err
		}
	}
}

// capture reads the capture register and publishes the press it names
func (r *ButtonReader) capture(ctx context.Context) error {
	mask, err := r.panel.ReadCapture()
	if err != nil {
		return deviceFault("read capture", err)
	}

	color, err := LookupColor(mask)
	if errors.Is(err, ErrUnknownButton) {
		r.discarded++
		r.log.Error().Err(err).Uint8(LogKey.Mask, mask).Msg("Discarding unknown key")
		return nil
	}

	r.log.Debug().Stringer(LogKey.Color, color).Msg("Adding press to queue")
	if err := r.events.Publish(ctx, color); err != nil {
		return err
	}
	r.published++
	return nil
}

// drain acknowledges the interrupt until it stays clear.
// Bounces and held buttons end up here and never produce events.
func (r *ButtonReader) drain(ctx context.Context) error {
	for {
		asserted, err := r.panel.InterruptAsserted()
		if err != nil {
			return deviceFault("interrupt poll", err)
		}
		if !asserted {
			return nil
		}
		if _, err := r.panel.ReadCapture(); err != nil {
			return deviceFault("read capture", err)
		}
		if err := sleep(ctx, r.poll); err != nil {
			return err
		}
	}
}

// Stats returns the published and discarded press counts.
// Only safe to call once Run has returned.
func (r *ButtonReader) Stats() (published, discarded uint32) {
	return r.published, r.discarded
}
