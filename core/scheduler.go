package core

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// Task is a long-running unit of work driven by the Scheduler.
// It must yield at every blocking point and return when ctx ends.
type Task func(ctx context.Context) error

type namedTask struct {
	name string
	run  Task
}

// Scheduler runs tasks side by side until the first one stops.
//
// On TinyGo's single-core targets goroutines are cooperatively scheduled,
// so this is the cooperative executor: a task only loses the CPU at a
// sleep or channel wait. On a hosted OS the same contract holds because
// tasks share nothing but the EventChannel.
type Scheduler struct {
	tasks []namedTask
	log   zerolog.Logger
}

// NewScheduler creates an empty scheduler
func NewScheduler(log *zerolog.Logger) *Scheduler {
	return &Scheduler{log: moduleLogger(log, "Scheduler")}
}

// Add registers a task. Tasks start in registration order.
func (s *Scheduler) Add(name string, task Task) {
	s.tasks = append(s.tasks, namedTask{name: name, run: task})
}

// Run starts every task and waits for all of them to finish. The first
// task to return cancels the others; its error is the result. A clean
// stop through ctx returns nil.
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.tasks) == 0 {
		return errors.New("scheduler: no tasks")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg    sync.WaitGroup
		once  sync.Once
		first error
	)
	for _, t := range s.tasks {
		wg.Add(1)
		go func(t namedTask) {
			defer wg.Done()
			s.log.Info().Str(LogKey.Task, t.name).Msg("Task starting")
			err := t.run(ctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				err = nil
			}
			if err != nil {
				s.log.Error().Err(err).Str(LogKey.Task, t.name).Msg("Task failed")
			} else {
				s.log.Info().Str(LogKey.Task, t.name).Msg("Task done")
			}
			once.Do(func() {
				first = err
				cancel()
			})
		}(t)
	}
	wg.Wait()
	return first
}

// NewEngine wires a reader and a game around one panel and schedules
// both. The returned game can be inspected once Run returns.
func NewEngine(panel Panel, cfg GameConfig) (*Scheduler, *Game) {
	timing := cfg.Timing.withDefaults()
	cfg.Timing = timing

	events := NewEventChannel(EventQueueSize)
	reader := NewButtonReader(panel, events, ReaderConfig{
		Poll:   timing.Poll,
		Settle: timing.Settle,
		Logger: cfg.Logger,
	})
	game := NewGame(panel, events, cfg)

	sched := NewScheduler(cfg.Logger)
	sched.Add("reader", reader.Run)
	sched.Add("game", game.Run)
	return sched, game
}
