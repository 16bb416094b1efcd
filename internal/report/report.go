// Package report exports finished runs: a JSON summary per run and a CSV
// dump of a raw trace.
package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

type Summary struct {
	RunID        string               `json:"run_id"`
	Name         string               `json:"name,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	Mode         replay.Mode          `json:"mode"`
	Direction    sorting.Direction    `json:"direction"`
	Initial      []int                `json:"initial"`
	Participants []Entry              `json:"participants"`
	Winner       algorithms.Algorithm `json:"winner,omitempty"`
}

type Entry struct {
	Role       replay.Role          `json:"role"`
	Algorithm  algorithms.Algorithm `json:"algorithm"`
	Stats      replay.Stats         `json:"stats"`
	FinishTick int                  `json:"finish_tick,omitempty"`
	Completed  bool                 `json:"completed"`
	Sorted     bool                 `json:"sorted"`
	Final      []int                `json:"final"`
}

// Summarize captures the engine's current run. finishTicks holds, per
// participant, the tick on which it completed (0 when unknown). The winner
// of a race is the participant that finished on the earliest tick; a tie
// has no winner.
func Summarize(e *replay.Engine, finishTicks []int) Summary {
	frame := e.Snapshot()
	runID := frame.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	s := Summary{
		RunID:     runID,
		CreatedAt: time.Now().UTC(),
		Mode:      frame.Mode,
		Direction: frame.Direction,
		Initial:   e.RestorePoint(),
	}
	for i, p := range frame.Participants {
		entry := Entry{
			Role:      p.Role,
			Algorithm: p.Algorithm,
			Stats:     p.Stats,
			Completed: p.Completed,
			Sorted:    sorting.Array(p.Values).IsSorted(frame.Direction),
			Final:     p.Values,
		}
		if i < len(finishTicks) {
			entry.FinishTick = finishTicks[i]
		}
		s.Participants = append(s.Participants, entry)
	}
	s.Winner = winner(s.Participants)
	return s
}

func winner(entries []Entry) algorithms.Algorithm {
	if len(entries) < 2 {
		return ""
	}
	best, tie := -1, false
	for i, e := range entries {
		if !e.Completed || e.FinishTick == 0 {
			continue
		}
		switch {
		case best < 0 || e.FinishTick < entries[best].FinishTick:
			best, tie = i, false
		case e.FinishTick == entries[best].FinishTick:
			tie = true
		}
	}
	if best < 0 || tie {
		return ""
	}
	return entries[best].Algorithm
}

func ExportJSON(path string, summary Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, summary)
}

func WriteJSON(w io.Writer, summary Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// WriteTraceCSV writes one row per step: index, kind, i, j, value.
func WriteTraceCSV(w io.Writer, trace sorting.Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "kind", "i", "j", "value"}); err != nil {
		return err
	}
	for n, s := range trace {
		row := []string{strconv.Itoa(n), s.Kind.String(), strconv.Itoa(s.I), "", ""}
		switch s.Kind {
		case sorting.KindCompare, sorting.KindPivot, sorting.KindSwap:
			row[3] = strconv.Itoa(s.J)
		case sorting.KindOverwrite:
			row[4] = strconv.Itoa(s.Value)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
