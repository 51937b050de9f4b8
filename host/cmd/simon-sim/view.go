package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"simon/core"
	"simon/sim"
)

// How long a key press holds the simulated button down
const tapHold = 120 * time.Millisecond

var lampColors = [core.NumColors]struct {
	on, off tcell.Color
}{
	core.Red:    {tcell.ColorRed, tcell.ColorMaroon},
	core.Yellow: {tcell.ColorYellow, tcell.ColorOlive},
	core.Green:  {tcell.ColorLime, tcell.ColorDarkGreen},
	core.Blue:   {tcell.ColorBlue, tcell.ColorNavy},
}

type view struct {
	panel *sim.Panel

	lamps  [core.NumColors]*tview.TextView
	status *tview.TextView
	log    *tview.TextView
	rows   *tview.Flex
	app    *tview.Application

	mu      sync.Mutex
	current core.Status
	redraw  chan struct{}
}

func newView(panel *sim.Panel) *view {
	v := &view{
		panel: panel,
		status: tview.NewTextView().
			SetTextAlign(tview.AlignCenter),
		log: tview.NewTextView().
			SetMaxLines(500),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app:    tview.NewApplication(),
		redraw: make(chan struct{}, 1),
	}

	cols := tview.NewFlex()
	for _, c := range core.Colors {
		lamp := tview.NewTextView().
			SetTextAlign(tview.AlignCenter).
			SetText(fmt.Sprintf("\n[%c] %s", c.String()[0], c))
		lamp.SetBackgroundColor(lampColors[c].off)
		v.lamps[c] = lamp
		cols.AddItem(lamp, 0, 1, false)
	}

	v.log.SetChangedFunc(func() { v.app.Draw() })
	v.status.SetBackgroundColor(tcell.ColorDarkGrey)
	v.rows.
		AddItem(cols, 5, 0, false).
		AddItem(v.status, 1, 0, false).
		AddItem(v.log, 0, 1, false)
	v.app.SetRoot(v.rows, true)
	v.app.SetInputCapture(v.handleKey)

	panel.OnChange(v.changed)
	v.setStatusText()
	return v
}

// handleKey maps r/y/g/b to button taps and q to quit
func (v *view) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	if ev.Key() == tcell.KeyEscape {
		v.app.Stop()
		return nil
	}
	switch ev.Rune() {
	case 'q':
		v.app.Stop()
		return nil
	case 'r', 'y', 'g', 'b':
		c, err := core.ParseColor(string(ev.Rune()))
		if err == nil {
			v.panel.Tap(c, tapHold)
		}
		return nil
	}
	return ev
}

// setStatus is the game's observer; it must not block the game task
func (v *view) setStatus(s core.Status) {
	v.mu.Lock()
	v.current = s
	v.mu.Unlock()
	v.changed()
}

// changed asks for a redraw without ever waiting on the UI
func (v *view) changed() {
	select {
	case v.redraw <- struct{}{}:
	default:
	}
}

// refresh forwards redraw requests to the UI goroutine until done closes
func (v *view) refresh(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-v.redraw:
			v.app.QueueUpdateDraw(func() {
				v.setLampColors()
				v.setStatusText()
			})
		}
	}
}

func (v *view) setLampColors() {
	lit := v.panel.Lamps()
	for _, c := range core.Colors {
		color := lampColors[c].off
		if lit[c] {
			color = lampColors[c].on
		}
		v.lamps[c].SetBackgroundColor(color)
	}
}

func (v *view) setStatusText() {
	v.mu.Lock()
	s := v.current
	v.mu.Unlock()
	v.status.SetText(fmt.Sprintf("state: %s   score: %d   sequence: %d   (r/y/g/b press, q quit)",
		s.State, s.Score, s.Length))
}
