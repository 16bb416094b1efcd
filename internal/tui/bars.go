package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	blue    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

type highlight int

const (
	plain highlight = iota
	sortedBar
	activeBar
	swappedBar
)

var barStyles = map[highlight]lipgloss.Style{
	plain:      blue,
	sortedBar:  green,
	activeBar:  yellow,
	swappedBar: magenta,
}

// highlights resolves the colour of every index. Swap highlights win over
// compare highlights, which win over sorted marks.
func highlights(p replay.ParticipantFrame) []highlight {
	h := make([]highlight, len(p.Values))
	for _, i := range p.Sorted {
		h[i] = sortedBar
	}
	for _, i := range p.Active {
		h[i] = activeBar
	}
	for _, i := range p.Swapped {
		h[i] = swappedBar
	}
	return h
}

// renderBars draws a participant as vertical bars rows high. When there
// are more values than columns, values are sampled.
func renderBars(p replay.ParticipantFrame, width, rows int) string {
	n := len(p.Values)
	if n == 0 || width < 1 || rows < 1 {
		return ""
	}
	cols := min(n, width)
	base := min(0, lo.Min(p.Values))
	span := max(lo.Max(p.Values)-base, 1)
	marks := highlights(p)

	levels := make([]int, cols)
	styles := make([]lipgloss.Style, cols)
	for c := range cols {
		i := c * n / cols
		levels[c] = ((p.Values[i]-base)*rows + span - 1) / span
		styles[c] = barStyles[marks[i]]
	}

	var b strings.Builder
	for r := rows; r >= 1; r-- {
		for c := range cols {
			if levels[c] >= r {
				b.WriteString(styles[c].Render("█"))
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func statusLine(p replay.ParticipantFrame) string {
	progress := 0.0
	if p.Length > 0 {
		progress = float64(p.Position) / float64(p.Length)
	}
	barWidth := 24
	filled := int(progress * float64(barWidth))
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))

	state := ""
	if p.Completed {
		state = green.Render(" done")
	}
	return fmt.Sprintf("%s %s %s  %s %d  %s %d  %s %d%s",
		white.Render(fmt.Sprintf("%-10s", p.Algorithm)),
		bar,
		dim.Render(fmt.Sprintf("%d/%d", p.Position, p.Length)),
		dim.Render("cmp"), p.Stats.Comparisons,
		dim.Render("swp"), p.Stats.Swaps,
		dim.Render("ovw"), p.Stats.Overwrites,
		state)
}

// renderFrame draws every participant of a frame stacked vertically.
func renderFrame(f replay.Frame, width, rows int) string {
	if len(f.Participants) > 1 {
		rows = max(rows/len(f.Participants)-1, 3)
	}
	var b strings.Builder
	for _, p := range f.Participants {
		b.WriteString(renderBars(p, width, rows))
		b.WriteString(statusLine(p) + "\n")
	}
	return b.String()
}
