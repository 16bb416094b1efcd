package replay

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

// Participant is one racer: a trace, its cursor and the live array the
// trace is applied to. Participants never share arrays.
type Participant struct {
	role      Role
	algorithm algorithms.Algorithm
	trace     sorting.Trace
	pos       int
	completed bool

	values  sorting.Array
	stats   Stats
	active  []int
	swapped []int
	sorted  map[int]struct{}
	last    *sorting.Step
}

func newParticipant(role Role, alg algorithms.Algorithm, trace sorting.Trace, initial sorting.Array) *Participant {
	return &Participant{
		role:      role,
		algorithm: alg,
		trace:     trace,
		values:    initial.Clone(),
		sorted:    make(map[int]struct{}),
	}
}

func (p *Participant) Role() Role                      { return p.role }
func (p *Participant) Algorithm() algorithms.Algorithm { return p.algorithm }
func (p *Participant) Position() int                   { return p.pos }
func (p *Participant) Len() int                        { return len(p.trace) }
func (p *Participant) Completed() bool                 { return p.completed }
func (p *Participant) Stats() Stats                    { return p.stats }
func (p *Participant) Values() sorting.Array           { return p.values.Clone() }

// apply performs one step on the live array and updates counters and
// highlight sets.
func (p *Participant) apply(s sorting.Step) {
	switch s.Kind {
	case sorting.KindCompare:
		p.active = []int{s.I, s.J}
		p.swapped = nil
		p.stats.Comparisons++
	case sorting.KindPivot:
		p.active = []int{s.I}
		p.swapped = nil
	case sorting.KindSwap:
		p.values.Swap(s.I, s.J)
		p.swapped = []int{s.I, s.J}
		p.active = nil
		p.stats.Swaps++
	case sorting.KindOverwrite:
		p.values.Set(s.I, s.Value)
		p.swapped = []int{s.I}
		p.active = nil
		p.stats.Overwrites++
	case sorting.KindSorted:
		if s.I < 0 || s.I >= len(p.values) {
			panic(fmt.Sprintf("replay: sorted index %d out of range [0,%d)", s.I, len(p.values)))
		}
		p.sorted[s.I] = struct{}{}
		p.active = nil
		p.swapped = nil
	}
	p.stats.Steps++
	p.last = &s
}

// advance applies up to n pending steps and returns the steps applied. The
// participant completes as soon as its cursor reaches the end of the trace.
func (p *Participant) advance(n int, dir sorting.Direction, observers []Observer) []sorting.Step {
	if p.completed {
		return nil
	}
	end := min(p.pos+n, len(p.trace))
	applied := p.trace[p.pos:end]
	for _, s := range applied {
		p.apply(s)
		p.pos++
		for _, o := range observers {
			o.OnStep(p.role, s)
		}
	}
	if p.pos >= len(p.trace) {
		p.complete(dir)
	}
	return applied
}

func (p *Participant) complete(dir sorting.Direction) {
	p.completed = true
	p.active = nil
	p.swapped = nil
	if p.values.IsSorted(dir) {
		for i := range p.values {
			p.sorted[i] = struct{}{}
		}
	}
}

func (p *Participant) frame() ParticipantFrame {
	sorted := lo.Keys(p.sorted)
	slices.Sort(sorted)
	f := ParticipantFrame{
		Role:      p.role,
		Algorithm: p.algorithm,
		Values:    p.values.Clone(),
		Active:    slices.Clone(p.active),
		Swapped:   slices.Clone(p.swapped),
		Sorted:    sorted,
		Stats:     p.stats,
		Position:  p.pos,
		Length:    len(p.trace),
		Completed: p.completed,
	}
	if p.last != nil {
		last := *p.last
		f.LastStep = &last
	}
	return f
}
