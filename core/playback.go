package core

import (
	"context"
	"time"
)

// Lamp helpers used by the game. Each one owns its delays and only returns
// once the lamps are back in their resting state, so no two blinks can
// overlap on the same lamp.

// blink lights c for d and then turns it off again
func (g *Game) blink(ctx context.Context, c Color, d time.Duration) error {
	g.log.Debug().Stringer(LogKey.Color, c).Dur("on", d).Msg("Blink")
	if err := g.setLamp(c, true); err != nil {
		return err
	}
	if err := sleep(ctx, d); err != nil {
		// Leave the lamp dark even when cancelled
		_ = g.setLamp(c, false)
		return err
	}
	return g.setLamp(c, false)
}

// blinkAll lights every lamp for on, then darkens them for off
func (g *Game) blinkAll(ctx context.Context, on, off time.Duration) error {
	if err := g.allLamps(true); err != nil {
		return err
	}
	if err := sleep(ctx, on); err != nil {
		_ = g.allLamps(false)
		return err
	}
	if err := g.allLamps(false); err != nil {
		return err
	}
	return sleep(ctx, off)
}

// playSequence shows the whole sequence, one lamp at a time
func (g *Game) playSequence(ctx context.Context) error {
	if err := g.allLamps(false); err != nil {
		return err
	}
	if err := sleep(ctx, g.timing.PlaybackLead); err != nil {
		return err
	}
	for _, c := range g.sequence {
		g.log.Debug().Stringer(LogKey.Color, c).Msg("Do sequence")
		if err := g.blink(ctx, c, g.timing.PlaybackOn); err != nil {
			return err
		}
		if err := sleep(ctx, g.timing.PlaybackOff); err != nil {
			return err
		}
	}
	return nil
}

// lightShow turns the lamps on one after another, step apart, then
// turns them all off
func (g *Game) lightShow(ctx context.Context, step time.Duration) error {
	g.log.Info().Msg("Welcome lights")
	for _, c := range Colors {
		if err := g.setLamp(c, true); err != nil {
			return err
		}
		if err := sleep(ctx, step); err != nil {
			_ = g.allLamps(false)
			return err
		}
	}
	return g.allLamps(false)
}

func (g *Game) setLamp(c Color, on bool) error {
	return deviceFault("set lamp", g.panel.SetLamp(c, on))
}

func (g *Game) allLamps(on bool) error {
	return deviceFault("all lamps", g.panel.AllLamps(on))
}
