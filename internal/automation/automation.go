package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/dataset"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/report"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Seed        int64  `yaml:"seed"`
	Races       []Race `yaml:"races"`
}

// Race is a single run in a scenario. Without a contender it is a solo
// run. Values, when given, take precedence over Size and Distribution.
type Race struct {
	Name         string `yaml:"name"`
	Algorithm    string `yaml:"algorithm"`
	Contender    string `yaml:"contender"`
	Direction    string `yaml:"direction"`
	Mode         string `yaml:"mode"`
	Size         int    `yaml:"size"`
	Distribution string `yaml:"distribution"`
	Values       []int  `yaml:"values"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Races) == 0 {
		return nil, fmt.Errorf("scenario %q has no races", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes all races in order and summarizes each one.
func RunScenario(ctx context.Context, scenario *Scenario) ([]report.Summary, error) {
	seed := scenario.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	results := make([]report.Summary, 0, len(scenario.Races))

	for i, race := range scenario.Races {
		log.WithFields(log.Fields{
			"scenario":  scenario.Name,
			"race":      fmt.Sprintf("%d/%d", i+1, len(scenario.Races)),
			"algorithm": race.Algorithm,
			"contender": race.Contender,
		}).Info("automation: running race")

		engine, err := race.setup(rng)
		if err != nil {
			return results, fmt.Errorf("race %d: %w", i+1, err)
		}
		finish, err := Drive(ctx, engine)
		if err != nil {
			return results, fmt.Errorf("race %d: %w", i+1, err)
		}

		summary := report.Summarize(engine, finish)
		summary.Name = race.Name
		results = append(results, summary)
	}
	return results, nil
}

func (r Race) setup(rng *rand.Rand) (*replay.Engine, error) {
	dir, err := sorting.ParseDirection(r.Direction)
	if err != nil {
		return nil, err
	}
	mode, err := replay.ParseMode(r.Mode)
	if err != nil {
		return nil, err
	}

	values := sorting.Array(r.Values)
	if len(values) == 0 {
		dist, err := dataset.ParseDistribution(r.Distribution)
		if err != nil {
			return nil, err
		}
		size := r.Size
		if size == 0 {
			size = dataset.DefaultSize
		}
		if values, err = dataset.Generate(size, dist, rng); err != nil {
			return nil, err
		}
	}

	engine := replay.New(replay.Config{Seed: rng.Int63()}, values)
	if err := engine.SetAlgorithms(algorithms.Algorithm(r.Algorithm), algorithms.Algorithm(r.Contender)); err != nil {
		return nil, err
	}
	if err := engine.SetDirection(dir); err != nil {
		return nil, err
	}
	if _, err := engine.Start(mode); err != nil {
		return nil, err
	}
	return engine, nil
}

// Drive ticks a started engine until it completes and returns, per
// participant, the tick on which it finished.
func Drive(ctx context.Context, engine *replay.Engine) ([]int, error) {
	finish := make([]int, len(engine.Participants()))
	for tick := 1; engine.State() == replay.Running; tick++ {
		if err := ctx.Err(); err != nil {
			return finish, err
		}
		engine.Tick()
		for i, p := range engine.Participants() {
			if p.Completed() && finish[i] == 0 {
				finish[i] = tick
			}
		}
	}
	return finish, nil
}

// SizeSweep measures one algorithm across a range of array sizes
type SizeSweep struct {
	Algorithm    algorithms.Algorithm
	Direction    sorting.Direction
	Distribution dataset.Distribution
	MinSize      int
	MaxSize      int
	NumSteps     int
	Seed         int64
}

// SweepResult holds the trace statistics for one size
type SweepResult struct {
	Size   int
	Counts sorting.Counts
	Steps  int
}

// RunSweep generates a trace per size and records its statistics
func RunSweep(ctx context.Context, sweep *SizeSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 || sweep.MinSize < 1 || sweep.MaxSize < sweep.MinSize {
		return nil, fmt.Errorf("%w: sweep %d..%d in %d steps", sorting.ErrInvalidValue, sweep.MinSize, sweep.MaxSize, sweep.NumSteps)
	}
	rng := rand.New(rand.NewSource(sweep.Seed))
	if sweep.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		size := sweep.MinSize
		if sweep.NumSteps > 1 {
			size += i * (sweep.MaxSize - sweep.MinSize) / (sweep.NumSteps - 1)
		}
		values, err := dataset.Generate(size, sweep.Distribution, rng)
		if err != nil {
			return results, err
		}
		trace, err := algorithms.Generate(sweep.Algorithm, values, sweep.Direction, rng)
		if err != nil {
			return results, err
		}
		results = append(results, SweepResult{Size: size, Counts: trace.Counts(), Steps: len(trace)})
		log.WithFields(log.Fields{"algorithm": sweep.Algorithm, "size": size, "steps": len(trace)}).Debug("automation: sweep point")
	}
	return results, nil
}

// TrialsConfig defines repeated runs over freshly shuffled arrays
type TrialsConfig struct {
	Algorithm    algorithms.Algorithm
	Direction    sorting.Direction
	Distribution dataset.Distribution
	Size         int
	NumTrials    int
	Seed         int64
}

// TrialStats aggregates trace statistics over all trials
type TrialStats struct {
	Trials         int
	MinSteps       int
	MaxSteps       int
	AvgSteps       float64
	AvgComparisons float64
	AvgWrites      float64
	Unsorted       int
}

// RunTrials generates NumTrials traces over random inputs of one size
func RunTrials(ctx context.Context, cfg *TrialsConfig) (TrialStats, error) {
	var stats TrialStats
	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var steps, compares, writes int
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		values, err := dataset.Generate(cfg.Size, cfg.Distribution, rng)
		if err != nil {
			return stats, err
		}
		trace, err := algorithms.Generate(cfg.Algorithm, values, cfg.Direction, rng)
		if err != nil {
			return stats, err
		}

		n := len(trace)
		if stats.Trials == 0 || n < stats.MinSteps {
			stats.MinSteps = n
		}
		stats.MaxSteps = max(stats.MaxSteps, n)
		counts := trace.Counts()
		steps += n
		compares += counts.Compares
		writes += counts.Swaps + counts.Overwrites
		if !trace.Apply(values).IsSorted(cfg.Direction) {
			stats.Unsorted++
		}
		stats.Trials++
	}
	if stats.Trials > 0 {
		stats.AvgSteps = float64(steps) / float64(stats.Trials)
		stats.AvgComparisons = float64(compares) / float64(stats.Trials)
		stats.AvgWrites = float64(writes) / float64(stats.Trials)
	}
	return stats, nil
}
