package playback

import (
	"context"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/dataset"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

const inboxSize = 32

// Command is work handed to the goroutine that owns a Controller.
type Command func(*Controller)

type Controller struct {
	opts   Options
	engine *replay.Engine
	rng    *rand.Rand
	speed  int
	inbox  chan Command
}

func New(opts Options, values sorting.Array) *Controller {
	opts = opts.normalize()
	seed := opts.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Controller{
		opts:   opts,
		engine: replay.New(opts.Engine, values),
		rng:    rand.New(rand.NewSource(seed)),
		speed:  opts.Speed,
		inbox:  make(chan Command, inboxSize),
	}
}

func (c *Controller) Engine() *replay.Engine { return c.engine }
func (c *Controller) Options() Options       { return c.opts }
func (c *Controller) Speed() int             { return c.speed }
func (c *Controller) State() replay.State    { return c.engine.State() }
func (c *Controller) Snapshot() replay.Frame { return c.engine.Snapshot() }

// SetSpeed clamps speed into the configured range and returns the value
// in effect.
func (c *Controller) SetSpeed(speed int) int {
	c.speed = c.opts.ClampSpeed(speed)
	return c.speed
}

// Delay is the normal-mode delay for the current speed.
func (c *Controller) Delay() time.Duration { return c.opts.Delay(c.speed) }

// Interval is the time until the next tick should fire.
func (c *Controller) Interval() time.Duration {
	if c.engine.Mode() == replay.Turbo {
		return c.opts.TurboInterval
	}
	return c.Delay()
}

// Generate replaces the array with a freshly generated one.
func (c *Controller) Generate(size int, dist dataset.Distribution) error {
	values, err := dataset.Generate(size, dist, c.rng)
	if err != nil {
		return err
	}
	return c.engine.SetArray(values)
}

func (c *Controller) SetValues(values sorting.Array) error { return c.engine.SetArray(values) }

func (c *Controller) ChooseAlgorithms(primary, contender algorithms.Algorithm) error {
	return c.engine.SetAlgorithms(primary, contender)
}

func (c *Controller) ChooseDirection(dir sorting.Direction) error { return c.engine.SetDirection(dir) }

func (c *Controller) Start(mode replay.Mode) (bool, error) { return c.engine.Start(mode) }
func (c *Controller) Pause() bool                          { return c.engine.Pause() }
func (c *Controller) Resume() bool                         { return c.engine.Resume() }
func (c *Controller) TogglePause() bool                    { return c.engine.TogglePause() }
func (c *Controller) Step() bool                           { return c.engine.Step() }
func (c *Controller) Stop() bool                           { return c.engine.Stop() }
func (c *Controller) Restart() (bool, error)               { return c.engine.Restart() }
func (c *Controller) Tick() bool                           { return c.engine.Tick() }

// Send queues cmd for the goroutine running Run or Serve. It is the only
// method that may be called from other goroutines.
func (c *Controller) Send(ctx context.Context, cmd Command) error {
	select {
	case c.inbox <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the current run: one engine tick per timer fire, queued
// commands in between. While paused no timer is armed and the loop waits
// for a command. Run returns nil once the run completes or is stopped, and
// ctx.Err() when ctx is cancelled.
func (c *Controller) Run(ctx context.Context, onFrame func(replay.Frame)) error {
	return c.loop(ctx, onFrame, false)
}

// Serve is Run without an end: it keeps processing commands across runs
// until ctx is cancelled.
func (c *Controller) Serve(ctx context.Context, onFrame func(replay.Frame)) error {
	return c.loop(ctx, onFrame, true)
}

func (c *Controller) loop(ctx context.Context, onFrame func(replay.Frame), forever bool) error {
	if onFrame == nil {
		onFrame = func(replay.Frame) {}
	}

	var timer *time.Timer
	disarm := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}
	defer disarm()

	for {
		state := c.engine.State()
		if !forever && !state.Active() {
			return nil
		}

		var fire <-chan time.Time
		if state == replay.Running {
			if timer == nil {
				timer = time.NewTimer(c.Interval())
			}
			fire = timer.C
		} else {
			disarm()
		}

		select {
		case <-ctx.Done():
			log.WithField("run", c.engine.RunID()).Debug("playback: cancelled")
			return ctx.Err()
		case cmd := <-c.inbox:
			run, interval := c.engine.RunID(), c.Interval()
			cmd(c)
			// A pending tick belongs to the old run or the old speed.
			if c.engine.RunID() != run || c.Interval() != interval {
				disarm()
			}
			onFrame(c.engine.Snapshot())
		case <-fire:
			timer = nil
			c.engine.Tick()
			onFrame(c.engine.Snapshot())
		}
	}
}
