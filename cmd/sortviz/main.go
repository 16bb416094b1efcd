package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/automation"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/config"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/dataset"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/playback"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/report"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/server"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/tui"
)

var (
	debug      bool
	configFile string
	preset     string

	algorithm    string
	contender    string
	direction    string
	mode         string
	size         int
	distribution string
	speed        int
	seed         int64
	valuesText   string

	live       bool
	frameRate  int
	exportPath string
	plot       bool

	outPath   string
	sweep     bool
	sweepMin  int
	sweepMax  int
	sweepN    int
	trials    int
	asJSON    bool
	serveAddr string
)

// main registers the sortviz commands and runs the interactive visualizer
// when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "sortviz",
		Short: "sorting algorithm visualizer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.RunInteractive(cfg)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration (group/name)")
	addSetupFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "replay one algorithm headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolo,
	}
	addSetupFlags(runCmd)
	addReplayFlags(runCmd)

	raceCmd := &cobra.Command{
		Use:   "race [algorithm] [contender]",
		Short: "race two algorithms on the same array",
		Args:  cobra.MaximumNArgs(2),
		RunE:  runRace,
	}
	addSetupFlags(raceCmd)
	addReplayFlags(raceCmd)
	raceCmd.Flags().BoolVar(&plot, "plot", true, "plot comparisons over steps")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "dump an algorithm's trace as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  dumpTrace,
	}
	addSetupFlags(traceCmd)
	traceCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm]",
		Short: "tabulate trace statistics of every algorithm, or sweep one across sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  bench,
	}
	addSetupFlags(benchCmd)
	benchCmd.Flags().BoolVar(&sweep, "sweep", false, "sweep one algorithm across array sizes")
	benchCmd.Flags().IntVar(&sweepMin, "min", dataset.MinSize, "smallest sweep size")
	benchCmd.Flags().IntVar(&sweepMax, "max", dataset.MaxSize, "largest sweep size")
	benchCmd.Flags().IntVar(&sweepN, "points", 10, "sweep points")
	benchCmd.Flags().IntVar(&trials, "trials", 0, "average one algorithm over this many random arrays")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted set of races",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&asJSON, "json", false, "print summaries as JSON")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream replays to browsers over websocket",
		RunE:  serve,
	}
	addSetupFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list preset groups, or the presets of a group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				groups := config.ListGroups()
				sort.Strings(groups)
				for _, g := range groups {
					fmt.Printf("  %s\n", g)
				}
				return nil
			}
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for group: %s\n", args[0])
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s/%s\n", args[0], p)
			}
			return nil
		},
	}

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list the available algorithms",
		RunE:  listAlgorithms,
	}

	rootCmd.AddCommand(runCmd, raceCmd, traceCmd, benchCmd, scenarioCmd, serveCmd, presetsCmd, algorithmsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSetupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", config.DefaultAlgorithm, "algorithm")
	cmd.Flags().StringVarP(&contender, "contender", "c", "", "algorithm to race against")
	cmd.Flags().StringVarP(&direction, "direction", "d", config.DefaultDirection, "sort direction (asc, desc)")
	cmd.Flags().StringVarP(&mode, "mode", "m", config.DefaultMode, "playback mode (normal, turbo)")
	cmd.Flags().IntVarP(&size, "size", "n", dataset.DefaultSize, "array size")
	cmd.Flags().StringVar(&distribution, "dist", config.DefaultDistribution, "array distribution")
	cmd.Flags().IntVar(&speed, "speed", playback.DefaultSpeed, "playback speed")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().StringVar(&valuesText, "values", "", "explicit array, e.g. \"5,3,8,1\"")
}

func addReplayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&live, "live", false, "render the replay live at the configured speed")
	cmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for live rendering")
	cmd.Flags().StringVar(&exportPath, "export", "", "write a JSON summary to this file")
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		group, name, _ := strings.Cut(preset, "/")
		p := config.GetPreset(group, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(group))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if flags.Changed("contender") {
		cfg.Contender = contender
	}
	if flags.Changed("direction") {
		cfg.Direction = direction
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("dist") {
		cfg.Distribution = distribution
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newController builds a controller for cfg with its array drawn from
// --values or generated from the configured distribution.
func newController(cfg *config.Config) (*playback.Controller, error) {
	ctrl := playback.New(cfg.PlaybackOptions(), sorting.Array{0})

	if valuesText != "" {
		values, err := dataset.Parse(valuesText)
		if err != nil {
			return nil, err
		}
		if err := ctrl.SetValues(values); err != nil {
			return nil, err
		}
	} else {
		dist, _ := dataset.ParseDistribution(cfg.Distribution)
		if err := ctrl.Generate(cfg.Size, dist); err != nil {
			return nil, err
		}
	}

	dir, _ := sorting.ParseDirection(cfg.Direction)
	if err := ctrl.ChooseDirection(dir); err != nil {
		return nil, err
	}
	if err := ctrl.ChooseAlgorithms(algorithms.Algorithm(cfg.Algorithm), algorithms.Algorithm(cfg.Contender)); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// execute starts the run and plays it to the end, live or instantly, and
// returns the tick on which each participant finished.
func execute(ctx context.Context, ctrl *playback.Controller, cfg *config.Config) ([]int, error) {
	m, _ := replay.ParseMode(cfg.Mode)
	if _, err := ctrl.Start(m); err != nil {
		return nil, err
	}
	if !live {
		return automation.Drive(ctx, ctrl.Engine())
	}

	renderer := tui.NewLiveRenderer(os.Stdout, frameRate)
	renderer.Start()
	defer renderer.Stop()

	finish := make([]int, len(ctrl.Engine().Participants()))
	tick := 0
	err := ctrl.Run(ctx, func(f replay.Frame) {
		tick++
		for i, p := range f.Participants {
			if p.Completed && finish[i] == 0 {
				finish[i] = tick
			}
		}
		renderer.OnFrame(f)
	})
	return finish, err
}

func runSolo(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cmd.Flags().Set("algorithm", args[0])
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Contender = ""

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	finish, err := execute(ctx, ctrl, cfg)
	if err != nil {
		return err
	}
	return finishRun(ctrl, finish)
}

// comparisonSeries records, per participant, the cumulative comparison
// count after every step.
type comparisonSeries struct {
	counts [2]float64
	series [2][]float64
}

func (c *comparisonSeries) OnStep(role replay.Role, step sorting.Step) {
	if step.Kind == sorting.KindCompare {
		c.counts[role]++
	}
	c.series[role] = append(c.series[role], c.counts[role])
}

func runRace(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cmd.Flags().Set("algorithm", args[0])
	}
	if len(args) > 1 {
		cmd.Flags().Set("contender", args[1])
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Contender == "" {
		return fmt.Errorf("race needs a contender (second argument or --contender)")
	}

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	series := &comparisonSeries{}
	ctrl.Engine().AddObserver(series)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	finish, err := execute(ctx, ctrl, cfg)
	if err != nil {
		return err
	}
	if err := finishRun(ctrl, finish); err != nil {
		return err
	}

	if plot && len(series.series[0]) > 1 && len(series.series[1]) > 1 {
		graph := asciigraph.PlotMany(series.series[:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("comparisons per step: %s (first) vs %s (second)", cfg.Algorithm, cfg.Contender)),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func finishRun(ctrl *playback.Controller, finish []int) error {
	summary := report.Summarize(ctrl.Engine(), finish)
	printSummary(summary)
	if exportPath != "" {
		if err := report.ExportJSON(exportPath, summary); err != nil {
			return err
		}
		fmt.Printf("summary written to %s\n", exportPath)
	}
	return nil
}

func printSummary(s report.Summary) {
	fmt.Printf("run id: %s\n", s.RunID)
	if s.Name != "" {
		fmt.Printf("race: %s\n", s.Name)
	}
	fmt.Printf("input (%d): %v\n\n", len(s.Initial), sorting.Array(s.Initial))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROLE\tALGORITHM\tSTEPS\tCOMPARISONS\tSWAPS\tOVERWRITES\tFINISH\tSORTED")
	for _, p := range s.Participants {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%v\n",
			p.Role,
			p.Algorithm,
			p.Stats.Steps,
			p.Stats.Comparisons,
			p.Stats.Swaps,
			p.Stats.Overwrites,
			p.FinishTick,
			p.Sorted,
		)
	}
	w.Flush()

	if len(s.Participants) > 0 {
		fmt.Printf("\nfinal: %v\n", sorting.Array(s.Participants[0].Final))
	}
	if s.Winner != "" {
		fmt.Printf("winner: %s\n", s.Winner)
	} else if len(s.Participants) > 1 {
		fmt.Println("winner: tie")
	}
}

func dumpTrace(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cmd.Flags().Set("algorithm", args[0])
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	dir, _ := sorting.ParseDirection(cfg.Direction)
	values := ctrl.Engine().Values()
	trace, err := algorithms.Generate(algorithms.Algorithm(cfg.Algorithm), values, dir, seededRand(cfg.Seed))
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	log.WithFields(log.Fields{"algorithm": cfg.Algorithm, "size": len(values), "steps": len(trace)}).Debug("trace generated")
	return report.WriteTraceCSV(out, trace)
}

// seededRand returns a source for randomized generators, or nil for a
// clock-seeded one when seed is zero.
func seededRand(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}

func bench(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cmd.Flags().Set("algorithm", args[0])
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	alg, _ := algorithms.Parse(cfg.Algorithm)
	dir, _ := sorting.ParseDirection(cfg.Direction)
	dist, _ := dataset.ParseDistribution(cfg.Distribution)

	switch {
	case sweep:
		return benchSweep(cmd.Context(), alg, dir, dist, cfg.Seed)
	case trials > 0:
		return benchTrials(cmd.Context(), alg, dir, dist, cfg)
	}

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	values := ctrl.Engine().Values()
	fmt.Printf("input (%d, %s, %s)\n\n", len(values), cfg.Distribution, dir)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSTEPS\tCOMPARISONS\tPIVOTS\tSWAPS\tOVERWRITES\tSORTED\tAVG\tWORST")
	for _, a := range algorithms.All() {
		info := algorithms.Info(a)
		trace, err := algorithms.Generate(a, values, dir, seededRand(cfg.Seed))
		if err != nil {
			fmt.Fprintf(w, "%s\tn/a\t\t\t\t\t\t%s\t%s\n", a, info.Average, info.Worst)
			continue
		}
		c := trace.Counts()
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%v\t%s\t%s\n",
			a, len(trace), c.Compares, c.Pivots, c.Swaps, c.Overwrites,
			trace.Apply(values).IsSorted(dir), info.Average, info.Worst)
	}
	return w.Flush()
}

func benchSweep(ctx context.Context, alg algorithms.Algorithm, dir sorting.Direction, dist dataset.Distribution, seed int64) error {
	results, err := automation.RunSweep(ctx, &automation.SizeSweep{
		Algorithm:    alg,
		Direction:    dir,
		Distribution: dist,
		MinSize:      sweepMin,
		MaxSize:      sweepMax,
		NumSteps:     sweepN,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tSTEPS\tCOMPARISONS\tSWAPS\tOVERWRITES")
	steps := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n", r.Size, r.Steps, r.Counts.Compares, r.Counts.Swaps, r.Counts.Overwrites)
		steps[i] = float64(r.Steps)
	}
	w.Flush()

	if len(steps) > 1 {
		graph := asciigraph.Plot(steps,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s steps vs size (%d..%d)", alg, sweepMin, sweepMax)),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func benchTrials(ctx context.Context, alg algorithms.Algorithm, dir sorting.Direction, dist dataset.Distribution, cfg *config.Config) error {
	stats, err := automation.RunTrials(ctx, &automation.TrialsConfig{
		Algorithm:    alg,
		Direction:    dir,
		Distribution: dist,
		Size:         cfg.Size,
		NumTrials:    trials,
		Seed:         cfg.Seed,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s over %d %s arrays of %d\n", alg, stats.Trials, dist, cfg.Size)
	fmt.Printf("  steps: min %d, max %d, avg %.1f\n", stats.MinSteps, stats.MaxSteps, stats.AvgSteps)
	fmt.Printf("  comparisons: avg %.1f\n", stats.AvgComparisons)
	fmt.Printf("  writes: avg %.1f\n", stats.AvgWrites)
	if stats.Unsorted > 0 {
		fmt.Printf("  unsorted: %d\n", stats.Unsorted)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc)
	if err != nil {
		return err
	}

	if asJSON {
		for _, r := range results {
			if err := report.WriteJSON(os.Stdout, r); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RACE\tALGORITHM\tSTEPS\tCOMPARISONS\tWRITES\tFINISH\tWINNER")
	for i, r := range results {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		for _, p := range r.Participants {
			mark := ""
			if p.Algorithm == r.Winner {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
				name, p.Algorithm, p.Stats.Steps, p.Stats.Comparisons,
				p.Stats.Swaps+p.Stats.Overwrites, p.FinishTick, mark)
			name = ""
		}
	}
	return w.Flush()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	dist, _ := dataset.ParseDistribution(cfg.Distribution)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("serving on %s (ws endpoint /ws)\n", serveAddr)
	return server.New(cfg.PlaybackOptions(), cfg.Size, dist).ListenAndServe(ctx, serveAddr)
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAVERAGE\tWORST\tSPACE\tNOTES")
	for _, a := range algorithms.All() {
		info := algorithms.Info(a)
		var notes []string
		if !info.Comparison {
			notes = append(notes, "non-comparison")
		}
		if info.Randomized {
			notes = append(notes, "randomized")
		}
		if info.NonNegativeOnly {
			notes = append(notes, "non-negative only")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", a, info.Name, info.Average, info.Worst, info.Space, strings.Join(notes, ", "))
	}
	return w.Flush()
}
