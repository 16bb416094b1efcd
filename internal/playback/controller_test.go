package playback_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/dataset"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/playback"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

var _ = Describe("Delay", func() {
	opts := playback.DefaultOptions()

	It("maps the slowest speed to the longest delay", func() {
		Expect(opts.Delay(playback.DefaultMinSpeed)).To(Equal(2 * time.Second))
	})

	It("maps the fastest speed to the shortest delay", func() {
		Expect(opts.Delay(playback.DefaultMaxSpeed)).To(Equal(time.Millisecond))
	})

	It("sits on the exponential curve in between", func() {
		Expect(opts.Delay(playback.DefaultSpeed)).To(BeNumerically("~", 45584*time.Microsecond, 10*time.Microsecond))
	})

	It("decreases strictly with speed", func() {
		prev := opts.Delay(playback.DefaultMinSpeed)
		for s := playback.DefaultMinSpeed + 1; s <= playback.DefaultMaxSpeed; s++ {
			d := opts.Delay(s)
			Expect(d).To(BeNumerically("<", prev), "speed %d", s)
			prev = d
		}
	})

	It("clamps out of range speeds", func() {
		Expect(opts.Delay(-5)).To(Equal(opts.Delay(playback.DefaultMinSpeed)))
		Expect(opts.Delay(1000)).To(Equal(opts.Delay(playback.DefaultMaxSpeed)))
	})
})

var _ = Describe("Controller", func() {
	var (
		ctrl  *playback.Controller
		input sorting.Array
	)

	fastOptions := func() playback.Options {
		opts := playback.DefaultOptions()
		opts.MinDelay = 50 * time.Microsecond
		opts.MaxDelay = time.Millisecond
		opts.Speed = playback.DefaultMaxSpeed
		opts.TurboInterval = 100 * time.Microsecond
		opts.Engine.Seed = 11
		return opts
	}

	BeforeEach(func() {
		input = sorting.Array{5, 3, 8, 1, 2}
		ctrl = playback.New(fastOptions(), input)
		Expect(ctrl.ChooseAlgorithms(algorithms.Bubble, "")).To(Succeed())
	})

	It("fills missing options with defaults", func() {
		c := playback.New(playback.Options{}, input)
		Expect(c.Speed()).To(Equal(playback.DefaultSpeed))
		Expect(c.Options().TurboInterval).To(Equal(playback.DefaultTurboInterval))
		Expect(c.Delay()).To(Equal(playback.DefaultOptions().Delay(playback.DefaultSpeed)))
	})

	It("clamps speed changes", func() {
		Expect(ctrl.SetSpeed(0)).To(Equal(playback.DefaultMinSpeed))
		Expect(ctrl.SetSpeed(500)).To(Equal(playback.DefaultMaxSpeed))
		Expect(ctrl.SetSpeed(42)).To(Equal(42))
	})

	It("uses the turbo interval in turbo mode", func() {
		_, err := ctrl.Start(replay.Turbo)
		Expect(err).NotTo(HaveOccurred())
		Expect(ctrl.Interval()).To(Equal(100 * time.Microsecond))
	})

	It("generates arrays only while idle", func() {
		Expect(ctrl.Generate(20, dataset.Reversed)).To(Succeed())
		Expect(ctrl.Engine().Values()).To(HaveLen(20))
		Expect(ctrl.Engine().Values().IsSorted(sorting.Descending)).To(BeTrue())

		ctrl.Start(replay.Normal)
		Expect(ctrl.Generate(20, dataset.Random)).To(MatchError(replay.ErrBusy))
		Expect(ctrl.SetValues(sorting.Array{1, 2})).To(MatchError(replay.ErrBusy))
	})

	It("returns immediately when nothing is running", func() {
		Expect(ctrl.Run(context.Background(), nil)).To(Succeed())
	})

	It("runs a normal-mode replay to completion", func() {
		ctrl.Start(replay.Normal)
		total := ctrl.Engine().Participants()[0].Len()

		frames := 0
		err := ctrl.Run(context.Background(), func(replay.Frame) { frames++ })
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(Equal(total))
		Expect(ctrl.State()).To(Equal(replay.Completed))
		Expect(ctrl.Engine().Values()).To(Equal(sorting.Array{1, 2, 3, 5, 8}))
	})

	It("runs a turbo race to completion in batches", func() {
		Expect(ctrl.Generate(60, dataset.Random)).To(Succeed())
		Expect(ctrl.ChooseAlgorithms(algorithms.Quick, algorithms.Heap)).To(Succeed())
		ctrl.Start(replay.Turbo)

		frames := 0
		Expect(ctrl.Run(context.Background(), func(replay.Frame) { frames++ })).To(Succeed())
		Expect(frames).To(BeNumerically("<=", replay.DefaultTurboTicks))

		final := ctrl.Snapshot()
		contender, ok := final.Contender()
		Expect(ok).To(BeTrue())
		Expect(final.Primary().Completed).To(BeTrue())
		Expect(contender.Completed).To(BeTrue())
		Expect(sorting.Array(contender.Values).IsSorted(sorting.Ascending)).To(BeTrue())
	})

	It("waits while paused and continues on resume", func() {
		ctrl.Start(replay.Normal)

		paused := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			pausedOnce := false
			done <- ctrl.Run(context.Background(), func(f replay.Frame) {
				if !pausedOnce && f.Primary().Stats.Steps == 3 {
					pausedOnce = true
					ctrl.Pause()
					close(paused)
				}
			})
		}()

		Eventually(paused).Should(BeClosed())
		Consistently(done, 20*time.Millisecond).ShouldNot(Receive())

		Expect(ctrl.Send(context.Background(), func(c *playback.Controller) { c.Resume() })).To(Succeed())
		Eventually(done).Should(Receive(BeNil()))
		Expect(ctrl.State()).To(Equal(replay.Completed))
	})

	It("single-steps through queued commands while paused", func() {
		ctrl.Start(replay.Normal)
		ctrl.Pause()

		done := make(chan error, 1)
		steps := make(chan int, 4)
		go func() {
			done <- ctrl.Run(context.Background(), func(f replay.Frame) { steps <- f.Primary().Stats.Steps })
		}()

		for want := 1; want <= 3; want++ {
			Expect(ctrl.Send(context.Background(), func(c *playback.Controller) { c.Step() })).To(Succeed())
			Eventually(steps).Should(Receive(Equal(want)))
		}
		Expect(ctrl.Send(context.Background(), func(c *playback.Controller) { c.Stop() })).To(Succeed())
		Eventually(done).Should(Receive(BeNil()))
	})

	It("restores the array when stopped mid-run", func() {
		ctrl.Start(replay.Normal)
		ctrl.Tick()
		ctrl.Tick()
		ctrl.Pause()
		Expect(ctrl.Engine().Values()).NotTo(Equal(input))

		done := make(chan error, 1)
		go func() { done <- ctrl.Run(context.Background(), nil) }()

		Expect(ctrl.Send(context.Background(), func(c *playback.Controller) { c.Stop() })).To(Succeed())
		Eventually(done).Should(Receive(BeNil()))
		Expect(ctrl.State()).To(Equal(replay.Idle))
		Expect(ctrl.Engine().Values()).To(Equal(input))
	})

	It("applies a speed change to the pending tick", func() {
		opts := fastOptions()
		opts.MaxDelay = 5 * time.Second
		opts.Speed = playback.DefaultMinSpeed
		c := playback.New(opts, input)
		Expect(c.ChooseAlgorithms(algorithms.Bubble, "")).To(Succeed())
		c.Start(replay.Normal)

		Expect(c.Send(context.Background(), func(c *playback.Controller) { c.SetSpeed(playback.DefaultMaxSpeed) })).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		Expect(c.Run(ctx, nil)).To(Succeed())
		Expect(c.State()).To(Equal(replay.Completed))
	})

	It("waits a full interval before the first tick of a restarted run", func() {
		opts := fastOptions()
		opts.MaxDelay = 300 * time.Millisecond
		opts.Speed = playback.DefaultMinSpeed
		c := playback.New(opts, input)
		Expect(c.ChooseAlgorithms(algorithms.Bubble, "")).To(Succeed())
		c.Start(replay.Normal)
		first := c.Engine().RunID()

		ticked := make(chan time.Time, 1)
		done := make(chan error, 1)
		go func() {
			done <- c.Run(context.Background(), func(f replay.Frame) {
				if f.RunID != first && f.Primary().Stats.Steps == 1 {
					select {
					case ticked <- time.Now():
					default:
					}
				}
			})
		}()

		time.Sleep(200 * time.Millisecond)
		restarted := time.Now()
		Expect(c.Send(context.Background(), func(c *playback.Controller) { c.Restart() })).To(Succeed())

		var at time.Time
		Eventually(ticked, time.Second).Should(Receive(&at))
		Expect(at.Sub(restarted)).To(BeNumerically(">=", 250*time.Millisecond))

		Expect(c.Send(context.Background(), func(c *playback.Controller) { c.Stop() })).To(Succeed())
		Eventually(done).Should(Receive(BeNil()))
	})

	It("returns the context error when cancelled", func() {
		ctrl.Start(replay.Normal)
		ctrl.Pause()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		Expect(ctrl.Run(ctx, nil)).To(MatchError(context.DeadlineExceeded))
		Expect(ctrl.State()).To(Equal(replay.Paused))
	})

	It("keeps serving commands across runs", func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		states := make(chan replay.State, 256)
		go func() {
			done <- ctrl.Serve(ctx, func(f replay.Frame) {
				if f.State != replay.Running {
					states <- f.State
				}
			})
		}()

		start := func(c *playback.Controller) { c.Start(replay.Turbo) }
		Expect(ctrl.Send(ctx, start)).To(Succeed())
		Eventually(states).Should(Receive(Equal(replay.Completed)))
		Expect(ctrl.Send(ctx, start)).To(Succeed())
		Eventually(states).Should(Receive(Equal(replay.Completed)))

		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})
})
