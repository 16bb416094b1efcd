package replay_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

type stepCounter struct {
	byRole map[replay.Role]int
}

func (c *stepCounter) OnStep(role replay.Role, _ sorting.Step) { c.byRole[role]++ }

func drain(e *replay.Engine) int {
	ticks := 0
	for e.State() == replay.Running && ticks < 1_000_000 {
		e.Tick()
		ticks++
	}
	return ticks
}

func stepThrough(e *replay.Engine) {
	for guard := 0; e.State() == replay.Paused && guard < 1_000_000; guard++ {
		e.Step()
	}
}

var _ = Describe("Engine", func() {
	var (
		input  sorting.Array
		engine *replay.Engine
	)

	BeforeEach(func() {
		input = sorting.Array{5, 3, 8, 1, 2}
		engine = replay.New(replay.Config{Seed: 1}, input)
		Expect(engine.SetAlgorithms(algorithms.Bubble, "")).To(Succeed())
	})

	Describe("starting a run", func() {
		It("enters Running and snapshots the array", func() {
			ok, err := engine.Start(replay.Normal)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(engine.State()).To(Equal(replay.Running))
			Expect(engine.RestorePoint()).To(Equal(input))
			Expect(engine.RunID()).NotTo(BeEmpty())
		})

		It("ignores a second start while active", func() {
			engine.Start(replay.Normal)
			engine.Tick()
			ok, err := engine.Start(replay.Turbo)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(engine.Mode()).To(Equal(replay.Normal))
			Expect(engine.Snapshot().Primary().Stats.Steps).To(Equal(1))
		})

		It("reports generator rejections", func() {
			Expect(engine.SetArray(sorting.Array{3, -2, 1})).To(Succeed())
			Expect(engine.SetAlgorithms(algorithms.Counting, "")).To(Succeed())
			ok, err := engine.Start(replay.Normal)
			Expect(err).To(MatchError(sorting.ErrNegativeValue))
			Expect(ok).To(BeFalse())
			Expect(engine.State()).To(Equal(replay.Idle))
		})

		It("rejects setup changes while active", func() {
			engine.Start(replay.Normal)
			Expect(engine.SetArray(sorting.Array{1})).To(MatchError(replay.ErrBusy))
			Expect(engine.SetDirection(sorting.Descending)).To(MatchError(replay.ErrBusy))
			Expect(engine.SetAlgorithms(algorithms.Quick, "")).To(MatchError(replay.ErrBusy))
		})
	})

	Describe("applying steps", func() {
		BeforeEach(func() {
			engine.Start(replay.Normal)
		})

		It("highlights a compare without mutating", func() {
			engine.Tick()
			f := engine.Snapshot().Primary()
			Expect(f.Active).To(Equal([]int{0, 1}))
			Expect(f.Swapped).To(BeEmpty())
			Expect(f.Values).To(Equal([]int{5, 3, 8, 1, 2}))
			Expect(f.Stats).To(Equal(replay.Stats{Comparisons: 1, Steps: 1}))
			Expect(f.LastStep).To(HaveValue(Equal(sorting.Compare(0, 1))))
		})

		It("swaps values and highlights the pair", func() {
			engine.Tick()
			engine.Tick()
			f := engine.Snapshot().Primary()
			Expect(f.Values).To(Equal([]int{3, 5, 8, 1, 2}))
			Expect(f.Swapped).To(Equal([]int{0, 1}))
			Expect(f.Active).To(BeEmpty())
			Expect(f.Stats.Swaps).To(Equal(1))
			Expect(f.Stats.Steps).To(Equal(2))
		})

		It("completes with every index sorted", func() {
			drain(engine)
			Expect(engine.State()).To(Equal(replay.Completed))
			f := engine.Snapshot().Primary()
			Expect(f.Values).To(Equal([]int{1, 2, 3, 5, 8}))
			Expect(f.Sorted).To(Equal([]int{0, 1, 2, 3, 4}))
			Expect(f.Completed).To(BeTrue())
			Expect(f.Position).To(Equal(f.Length))
		})
	})

	Describe("invalid transitions", func() {
		It("ignores commands that do not fit the state", func() {
			Expect(engine.Resume()).To(BeFalse())
			Expect(engine.Pause()).To(BeFalse())
			Expect(engine.Step()).To(BeFalse())
			Expect(engine.Tick()).To(BeFalse())
			Expect(engine.Stop()).To(BeFalse())
			ok, err := engine.Restart()
			Expect(ok).To(BeFalse())
			Expect(err).NotTo(HaveOccurred())
			Expect(engine.State()).To(Equal(replay.Idle))

			engine.Start(replay.Normal)
			Expect(engine.Step()).To(BeFalse(), "step is only valid while paused")
			Expect(engine.Resume()).To(BeFalse())
			Expect(engine.Snapshot().Primary().Stats.Steps).To(BeZero())
		})
	})

	Describe("pausing and stepping", func() {
		BeforeEach(func() {
			engine.Start(replay.Normal)
			Expect(engine.Pause()).To(BeTrue())
		})

		It("stops ticking while paused", func() {
			Expect(engine.Tick()).To(BeFalse())
			Expect(engine.Snapshot().Primary().Stats.Steps).To(BeZero())
		})

		It("applies exactly one step per call", func() {
			Expect(engine.Step()).To(BeTrue())
			Expect(engine.Step()).To(BeTrue())
			f := engine.Snapshot().Primary()
			Expect(f.Stats.Steps).To(Equal(2))
			Expect(f.LastStep.Kind).To(Equal(sorting.KindSwap))
		})

		It("resumes continuous playback", func() {
			engine.Step()
			Expect(engine.TogglePause()).To(BeTrue())
			Expect(engine.State()).To(Equal(replay.Running))
			engine.Tick()
			Expect(engine.Snapshot().Primary().Stats.Steps).To(Equal(2))
		})

		It("completes when stepping reaches the end", func() {
			stepThrough(engine)
			Expect(engine.State()).To(Equal(replay.Completed))
			Expect(engine.Values()).To(Equal(sorting.Array{1, 2, 3, 5, 8}))
		})
	})

	Describe("stop and restart", func() {
		It("restores the snapshot taken at start", func() {
			engine.Start(replay.Normal)
			for i := 0; i < 7; i++ {
				engine.Tick()
			}
			Expect(engine.Values()).NotTo(Equal(input))

			Expect(engine.Stop()).To(BeTrue())
			Expect(engine.State()).To(Equal(replay.Idle))
			Expect(engine.Values()).To(Equal(input))
			Expect(engine.Snapshot().Primary().Stats).To(Equal(replay.Stats{}))
		})

		It("restores after completion too", func() {
			engine.Start(replay.Turbo)
			drain(engine)
			Expect(engine.Stop()).To(BeTrue())
			Expect(engine.Values()).To(Equal(input))
		})

		It("restarts with the same mode and fresh statistics", func() {
			engine.Start(replay.Turbo)
			engine.Tick()
			engine.Pause()

			ok, err := engine.Restart()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(engine.State()).To(Equal(replay.Running))
			Expect(engine.Mode()).To(Equal(replay.Turbo))
			Expect(engine.Snapshot().Primary().Stats.Steps).To(BeZero())
			Expect(engine.RestorePoint()).To(Equal(input))
		})

		It("starts again from a completed run using the sorted array", func() {
			engine.Start(replay.Turbo)
			drain(engine)
			ok, err := engine.Start(replay.Normal)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(engine.RestorePoint()).To(Equal(sorting.Array{1, 2, 3, 5, 8}))
		})
	})

	Describe("turbo playback", func() {
		It("applies a batch per tick and finishes in about eighty ticks", func() {
			values := make(sorting.Array, 60)
			for i := range values {
				values[i] = 60 - i
			}
			Expect(engine.SetArray(values)).To(Succeed())
			engine.Start(replay.Turbo)

			total := engine.Participants()[0].Len()
			batch := replay.BatchSize(total, replay.DefaultTurboTicks, replay.DefaultTurboFloor)
			engine.Tick()
			Expect(engine.Snapshot().Primary().Stats.Steps).To(Equal(batch))

			ticks := 1 + drain(engine)
			Expect(ticks).To(BeNumerically("<=", replay.DefaultTurboTicks))
			Expect(engine.Values().IsSorted(sorting.Ascending)).To(BeTrue())
		})
	})

	Describe("replay equivalence", func() {
		It("ends in the same array whichever way the trace is driven", func() {
			values := sorting.Array{9, 4, 7, 1, 8, 2, 6, 3, 5, 0, 4, 7}
			for _, alg := range []algorithms.Algorithm{algorithms.Merge, algorithms.Quick, algorithms.Heap, algorithms.Radix, algorithms.Tim} {
				finals := map[string]sorting.Array{}
				for _, how := range []string{"normal", "turbo", "manual"} {
					e := replay.New(replay.Config{Seed: 1}, values)
					Expect(e.SetAlgorithms(alg, "")).To(Succeed())
					Expect(e.SetDirection(sorting.Descending)).To(Succeed())
					switch how {
					case "normal":
						e.Start(replay.Normal)
						drain(e)
					case "turbo":
						e.Start(replay.Turbo)
						drain(e)
					case "manual":
						e.Start(replay.Normal)
						e.Pause()
						stepThrough(e)
					}
					Expect(e.State()).To(Equal(replay.Completed), "%s/%s", alg, how)
					finals[how] = e.Values()
				}
				Expect(finals["manual"]).To(Equal(finals["normal"]), string(alg))
				Expect(finals["turbo"]).To(Equal(finals["normal"]), string(alg))
				Expect(finals["normal"].IsSorted(sorting.Descending)).To(BeTrue())
			}
		})
	})

	Describe("racing", func() {
		var values sorting.Array

		BeforeEach(func() {
			values = sorting.Array{10, 3, 7, 1, 9, 2, 8, 4, 6, 5}
			Expect(engine.SetArray(values)).To(Succeed())
			Expect(engine.SetAlgorithms(algorithms.Bubble, algorithms.Selection)).To(Succeed())
		})

		It("completes both participants independently", func() {
			counter := &stepCounter{byRole: map[replay.Role]int{}}
			engine.AddObserver(counter)
			engine.Start(replay.Normal)
			Expect(engine.Racing()).To(BeTrue())
			drain(engine)

			Expect(engine.State()).To(Equal(replay.Completed))
			frame := engine.Snapshot()
			primary := frame.Primary()
			contender, ok := frame.Contender()
			Expect(ok).To(BeTrue())

			bubble := algorithms.BubbleSort(values, sorting.Ascending).Counts()
			selection := algorithms.SelectionSort(values, sorting.Ascending).Counts()

			Expect(primary.Algorithm).To(Equal(algorithms.Bubble))
			Expect(primary.Values).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
			Expect(primary.Stats.Comparisons).To(Equal(bubble.Compares))
			Expect(primary.Stats.Swaps).To(Equal(bubble.Swaps))

			Expect(contender.Algorithm).To(Equal(algorithms.Selection))
			Expect(contender.Values).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
			Expect(contender.Stats.Comparisons).To(Equal(selection.Compares))
			Expect(contender.Stats.Swaps).To(Equal(selection.Swaps))

			Expect(counter.byRole[replay.Primary]).To(Equal(primary.Length))
			Expect(counter.byRole[replay.Contender]).To(Equal(contender.Length))
		})

		It("lets the faster participant finish while the other keeps going", func() {
			engine.Start(replay.Normal)
			shorter := min(engine.Participants()[0].Len(), engine.Participants()[1].Len())
			for i := 0; i < shorter; i++ {
				engine.Tick()
			}
			done := 0
			for _, p := range engine.Participants() {
				if p.Completed() {
					done++
				}
			}
			Expect(done).To(Equal(1))
			Expect(engine.State()).To(Equal(replay.Running))
		})

		It("steps both cursors on a manual step", func() {
			engine.Start(replay.Normal)
			engine.Pause()
			engine.Step()
			for _, p := range engine.Participants() {
				Expect(p.Position()).To(Equal(1))
			}
		})

		It("seeds both participants from the same snapshot", func() {
			engine.Start(replay.Normal)
			frame := engine.Snapshot()
			contender, _ := frame.Contender()
			Expect(frame.Primary().Values).To(Equal(contender.Values))
		})
	})

	It("completes an empty trace on the first tick", func() {
		Expect(engine.SetArray(sorting.Array{4})).To(Succeed())
		Expect(engine.SetAlgorithms(algorithms.Merge, "")).To(Succeed())
		engine.Start(replay.Normal)
		Expect(engine.State()).To(Equal(replay.Running))
		engine.Tick()
		Expect(engine.State()).To(Equal(replay.Completed))
		Expect(engine.Snapshot().Primary().Sorted).To(Equal([]int{0}))
	})
})

var _ = DescribeTable("BatchSize",
	func(length, want int) {
		Expect(replay.BatchSize(length, 80, 10)).To(Equal(want))
	},
	Entry("tiny trace uses the floor", 5, 10),
	Entry("exactly the floor", 800, 10),
	Entry("rounds up", 801, 11),
	Entry("large trace", 8000, 100),
	Entry("empty trace", 0, 10),
)
