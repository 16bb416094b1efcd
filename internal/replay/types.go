package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

// ErrBusy is returned by setup commands while a run is active.
var ErrBusy = errors.New("replay: run in progress")

type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

var stateNames = [...]string{"idle", "running", "paused", "completed"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("replay: unknown state %q", text)
}

// Active reports whether a trace is currently being played.
func (s State) Active() bool { return s == Running || s == Paused }

type Mode int

const (
	Normal Mode = iota
	Turbo
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return Normal, nil
	case "turbo":
		return Turbo, nil
	}
	return Normal, fmt.Errorf("replay: unknown mode %q", s)
}

func (m Mode) String() string {
	if m == Turbo {
		return "turbo"
	}
	return "normal"
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

type Role int

const (
	Primary Role = iota
	Contender
)

func (r Role) String() string {
	if r == Contender {
		return "contender"
	}
	return "primary"
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(text []byte) error {
	switch string(text) {
	case "primary":
		*r = Primary
	case "contender":
		*r = Contender
	default:
		return fmt.Errorf("replay: unknown role %q", text)
	}
	return nil
}

// Stats are the per-participant counters, monotonically incremented as
// steps are applied.
type Stats struct {
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
	Overwrites  int `json:"overwrites"`
	Steps       int `json:"steps"`
}

// Observer is notified after every applied step.
type Observer interface {
	OnStep(role Role, step sorting.Step)
}

// Frame is a read-only snapshot of the engine for renderers.
type Frame struct {
	RunID        string             `json:"run_id,omitempty"`
	State        State              `json:"state"`
	Mode         Mode               `json:"mode"`
	Direction    sorting.Direction  `json:"direction"`
	Participants []ParticipantFrame `json:"participants"`
}

type ParticipantFrame struct {
	Role      Role                 `json:"role"`
	Algorithm algorithms.Algorithm `json:"algorithm"`
	Values    []int                `json:"values"`
	Active    []int                `json:"active"`
	Swapped   []int                `json:"swapped"`
	Sorted    []int                `json:"sorted"`
	Stats     Stats                `json:"stats"`
	Position  int                  `json:"position"`
	Length    int                  `json:"length"`
	Completed bool                 `json:"completed"`
	LastStep  *sorting.Step        `json:"last_step,omitempty"`
}

// Primary returns the primary participant's frame.
func (f Frame) Primary() ParticipantFrame {
	if len(f.Participants) == 0 {
		return ParticipantFrame{}
	}
	return f.Participants[0]
}

// Contender returns the contender's frame and whether a race is on.
func (f Frame) Contender() (ParticipantFrame, bool) {
	if len(f.Participants) < 2 {
		return ParticipantFrame{}, false
	}
	return f.Participants[1], true
}
