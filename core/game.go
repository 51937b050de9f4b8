package core

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// State is the game's round state
type State uint8

const (
	StateIdle State = iota
	StateWelcome
	StatePlaying
	StateFailed
)

var stateNames = [...]string{"idle", "welcome", "playing", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Status is a snapshot of the game handed to observers
type Status struct {
	State  State
	Score  int
	Length int
}

// GameConfig configures a Game. Zero fields take defaults.
type GameConfig struct {
	Timing Timing

	// Seed supplies the value the color source is reseeded with at the
	// start of every game. Defaults to the wall clock.
	Seed func() uint64

	// OnStatus, if set, is called from the game task on every state or
	// score change. It must not block.
	OnStatus func(Status)

	Logger *zerolog.Logger
}

// Game is the Simon state machine. It owns the sequence and the score;
// a single instance is driven by Run from one task.
type Game struct {
	panel    LampPanel
	events   *EventChannel
	timing   Timing
	seed     func() uint64
	onStatus func(Status)
	log      zerolog.Logger

	rng      *rand.Rand
	state    State
	score    int
	sequence []Color
}

// NewGame creates a game consuming presses from events and driving panel
func NewGame(panel LampPanel, events *EventChannel, cfg GameConfig) *Game {
	if cfg.Seed == nil {
		cfg.Seed = func() uint64 { return uint64(time.Now().UnixNano()) }
	}
	g := &Game{
		panel:    panel,
		events:   events,
		timing:   cfg.Timing.withDefaults(),
		seed:     cfg.Seed,
		onStatus: cfg.OnStatus,
		log:      moduleLogger(cfg.Logger, "Game"),
		state:    StateIdle,
	}
	g.reseed()
	return g
}

// Run plays games forever: welcome show, wait for a start press, play
// rounds until the player fails, repeat. It returns on context end or on
// a DeviceFault.
func (g *Game) Run(ctx context.Context) error {
	for {
		if err := g.Welcome(ctx); err != nil {
			return err
		}
		if err := g.AwaitStart(ctx); err != nil {
			return err
		}
		for g.state == StatePlaying {
			if _, err := g.PlayRound(ctx); err != nil {
				return err
			}
		}
	}
}

// Welcome enters StateWelcome and runs the idle light show
func (g *Game) Welcome(ctx context.Context) error {
	g.setState(StateWelcome)
	return g.lightShow(ctx, g.timing.WelcomeStep)
}

// AwaitStart blocks for any press and starts a new game with it.
// The color of the start press is ignored.
func (g *Game) AwaitStart(ctx context.Context) error {
	g.log.Info().Msg("Waiting for keypress to start game")
	if _, err := g.events.Consume(ctx); err != nil {
		return err
	}
	if err := g.lightShow(ctx, g.timing.StartStep); err != nil {
		return err
	}
	g.start()
	return nil
}

// start resets the round and enters StatePlaying
func (g *Game) start() {
	g.reseed()
	g.score = 0
	g.sequence = g.sequence[:0]
	g.setState(StatePlaying)
	g.log.Info().Msg("Game start")
}

// PlayRound runs one round: pause, extend the sequence by one color, play
// it back and verify the player's presses. It reports whether the player
// matched the whole sequence; on a miss the failure sequence has already
// run and the game is back to StateWelcome.
func (g *Game) PlayRound(ctx context.Context) (bool, error) {
	g.log.Info().Int(LogKey.Score, g.score).Msg("Playing game")
	if err := sleep(ctx, g.timing.RoundDelay); err != nil {
		return false, err
	}

	g.sequence = append(g.sequence, PickColor(g.rng))
	g.notify()

	if err := g.playSequence(ctx); err != nil {
		return false, err
	}

	for i, want := range g.sequence {
		got, err := g.events.ConsumeTimeout(ctx, g.timing.PressTimeout)
		switch {
		case errors.Is(err, ErrTimeout):
			g.log.Info().Int("step", i).Msg("Timed out waiting for button press")
			return false, g.Fail(ctx)
		case err != nil:
			return false, err
		}

		if got != want {
			g.log.Info().Stringer("want", want).Stringer("got", got).Msg("Wrong button")
			return false, g.Fail(ctx)
		}
		if err := g.blink(ctx, got, g.timing.FeedbackOn); err != nil {
			return false, err
		}
	}

	g.score++
	g.notify()
	return true, nil
}

// Fail resets the score and sequence, flashes every lamp and returns the
// game to StateWelcome. Wrong presses and timeouts look the same.
func (g *Game) Fail(ctx context.Context) error {
	g.score = 0
	g.sequence = g.sequence[:0]
	g.setState(StateFailed)

	for i := 0; i < g.timing.FailFlashes; i++ {
		if err := g.blinkAll(ctx, g.timing.FailFlashOn, g.timing.FailFlashOff); err != nil {
			return err
		}
	}
	g.setState(StateWelcome)
	return nil
}

// State returns the current round state
func (g *Game) State() State {
	return g.state
}

// Score returns the number of rounds completed in the current game
func (g *Game) Score() int {
	return g.score
}

// Sequence returns a copy of the current color sequence
func (g *Game) Sequence() []Color {
	return append([]Color(nil), g.sequence...)
}

func (g *Game) reseed() {
	s := g.seed()
	g.rng = rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	g.log.Info().Stringer(LogKey.State, s).Msg("State change")
	g.state = s
	g.notify()
}

func (g *Game) notify() {
	if g.onStatus == nil {
		return
	}
	g.onStatus(Status{State: g.state, Score: g.score, Length: len(g.sequence)})
}
