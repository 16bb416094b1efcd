package replay

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

const (
	DefaultTurboTicks = 80
	DefaultTurboFloor = 10
)

type Config struct {
	// TurboTicks is the number of ticks a turbo run should take
	// regardless of trace length.
	TurboTicks int
	// TurboFloor is the minimum number of steps per turbo tick.
	TurboFloor int
	// Seed feeds randomized generators; 0 means time-seeded.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		TurboTicks: DefaultTurboTicks,
		TurboFloor: DefaultTurboFloor,
	}
}

// BatchSize returns the number of steps applied per turbo tick for a trace
// of the given length.
func BatchSize(traceLen, ticks, floor int) int {
	if ticks < 1 {
		ticks = 1
	}
	return max(floor, (traceLen+ticks-1)/ticks, 1)
}

// Engine replays one trace, or two when racing, against live arrays.
//
// State transitions:
//
//	Idle/Completed --Start--> Running <--Pause/Resume--> Paused
//	Running --(all participants done)--> Completed
//	Running/Paused/Completed --Stop--> Idle
//
// Requests that do not match the current state are ignored and reported
// by a false return value.
//
// Engine is NOT thread-safe; a single goroutine must own it.
type Engine struct {
	cfg Config
	rng *rand.Rand

	state State
	mode  Mode
	runID string

	direction sorting.Direction
	primary   algorithms.Algorithm
	contender algorithms.Algorithm

	values       sorting.Array
	restore      sorting.Array
	participants []*Participant
	observers    []Observer
}

func New(cfg Config, values sorting.Array) *Engine {
	if cfg.TurboTicks <= 0 {
		cfg.TurboTicks = DefaultTurboTicks
	}
	if cfg.TurboFloor <= 0 {
		cfg.TurboFloor = DefaultTurboFloor
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		direction: sorting.Ascending,
		primary:   algorithms.Merge,
		values:    values.Clone(),
	}
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) State() State                 { return e.state }
func (e *Engine) Mode() Mode                   { return e.mode }
func (e *Engine) Direction() sorting.Direction { return e.direction }
func (e *Engine) Racing() bool                 { return e.contender != "" }
func (e *Engine) RunID() string                { return e.runID }
func (e *Engine) Participants() []*Participant { return e.participants }
func (e *Engine) Algorithms() (algorithms.Algorithm, algorithms.Algorithm) {
	return e.primary, e.contender
}

// Values returns the primary live array.
func (e *Engine) Values() sorting.Array {
	if len(e.participants) > 0 {
		return e.participants[0].Values()
	}
	return e.values.Clone()
}

// RestorePoint returns the snapshot taken by the most recent Start.
func (e *Engine) RestorePoint() sorting.Array { return e.restore.Clone() }

// SetArray replaces the array model. A completed run is discarded.
func (e *Engine) SetArray(values sorting.Array) error {
	if e.state.Active() {
		return ErrBusy
	}
	if len(values) == 0 {
		return sorting.ErrEmptyInput
	}
	e.discard()
	e.values = values.Clone()
	return nil
}

// SetAlgorithms selects the primary algorithm and, when contender is not
// empty, the algorithm it races against.
func (e *Engine) SetAlgorithms(primary, contender algorithms.Algorithm) error {
	if e.state.Active() {
		return ErrBusy
	}
	p, err := algorithms.Parse(string(primary))
	if err != nil {
		return err
	}
	var c algorithms.Algorithm
	if contender != "" {
		if c, err = algorithms.Parse(string(contender)); err != nil {
			return err
		}
	}
	e.primary, e.contender = p, c
	return nil
}

func (e *Engine) SetDirection(dir sorting.Direction) error {
	if e.state.Active() {
		return ErrBusy
	}
	if dir != sorting.Ascending && dir != sorting.Descending {
		return fmt.Errorf("%w: %q", sorting.ErrUnknownDirection, string(dir))
	}
	e.direction = dir
	return nil
}

// Start snapshots the live array as the restore point, generates the
// trace of every participant and enters Running. It is ignored unless the
// engine is Idle or Completed.
func (e *Engine) Start(mode Mode) (bool, error) {
	if e.state != Idle && e.state != Completed {
		return false, nil
	}
	snapshot := e.Values()

	roles := []algorithms.Algorithm{e.primary}
	if e.contender != "" {
		roles = append(roles, e.contender)
	}
	participants := make([]*Participant, 0, len(roles))
	for i, alg := range roles {
		trace, err := algorithms.Generate(alg, snapshot, e.direction, e.rng)
		if err != nil {
			return false, fmt.Errorf("generate %s trace: %w", alg, err)
		}
		participants = append(participants, newParticipant(Role(i), alg, trace, snapshot))
	}

	e.values = snapshot
	e.restore = snapshot.Clone()
	e.participants = participants
	e.mode = mode
	e.runID = uuid.NewString()
	e.state = Running

	fields := log.Fields{"run": e.runID, "mode": mode, "direction": e.direction, "size": len(snapshot)}
	for _, p := range participants {
		fields[p.role.String()] = fmt.Sprintf("%s (%d steps)", p.algorithm, p.Len())
	}
	log.WithFields(fields).Debug("replay: run started")
	return true, nil
}

func (e *Engine) Pause() bool {
	if e.state != Running {
		return false
	}
	e.state = Paused
	log.WithField("run", e.runID).Debug("replay: paused")
	return true
}

func (e *Engine) Resume() bool {
	if e.state != Paused {
		return false
	}
	e.state = Running
	log.WithField("run", e.runID).Debug("replay: resumed")
	return true
}

func (e *Engine) TogglePause() bool {
	if e.state == Paused {
		return e.Resume()
	}
	return e.Pause()
}

// Step applies exactly one pending step per unfinished participant. It is
// only valid while Paused.
func (e *Engine) Step() bool {
	if e.state != Paused {
		return false
	}
	for _, p := range e.participants {
		p.advance(1, e.direction, e.observers)
	}
	e.checkCompletion()
	return true
}

// Tick advances every unfinished participant by one scheduling tick: one
// step in normal mode, one batch in turbo mode. It is only valid while
// Running.
func (e *Engine) Tick() bool {
	if e.state != Running {
		return false
	}
	for _, p := range e.participants {
		n := 1
		if e.mode == Turbo {
			n = BatchSize(p.Len(), e.cfg.TurboTicks, e.cfg.TurboFloor)
		}
		p.advance(n, e.direction, e.observers)
	}
	e.checkCompletion()
	return true
}

// Stop discards the run and restores the array to the pre-run snapshot.
func (e *Engine) Stop() bool {
	if e.state == Idle {
		return false
	}
	e.values = e.restore.Clone()
	e.participants = nil
	e.state = Idle
	log.WithField("run", e.runID).Debug("replay: stopped")
	e.runID = ""
	return true
}

// Restart is Stop followed by Start with the same configuration.
func (e *Engine) Restart() (bool, error) {
	mode := e.mode
	if !e.Stop() {
		return false, nil
	}
	return e.Start(mode)
}

// Snapshot returns the current frame. Outside a run a single primary
// participant frame shows the array model.
func (e *Engine) Snapshot() Frame {
	f := Frame{
		RunID:     e.runID,
		State:     e.state,
		Mode:      e.mode,
		Direction: e.direction,
	}
	if len(e.participants) == 0 {
		f.Participants = []ParticipantFrame{{
			Role:      Primary,
			Algorithm: e.primary,
			Values:    e.values.Clone(),
		}}
		return f
	}
	for _, p := range e.participants {
		f.Participants = append(f.Participants, p.frame())
	}
	return f
}

func (e *Engine) checkCompletion() {
	for _, p := range e.participants {
		if !p.completed {
			return
		}
	}
	e.state = Completed
	fields := log.Fields{"run": e.runID}
	for _, p := range e.participants {
		fields[p.role.String()] = fmt.Sprintf("%s %+v", p.algorithm, p.stats)
	}
	log.WithFields(fields).Info("replay: run completed")
}

// discard drops a completed run, keeping its final primary array.
func (e *Engine) discard() {
	if e.state != Completed {
		return
	}
	e.values = e.Values()
	e.participants = nil
	e.state = Idle
	e.runID = ""
}
