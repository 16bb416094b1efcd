package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/algorithms"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/config"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/dataset"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/playback"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/replay"
	"github.com/shekel18/Sorting-Algorithm-Visualiser/internal/sorting"
)

const (
	sizeStep  = 5
	speedStep = 10
)

type state int

const (
	stateMenu state = iota
	stateConfig
	stateRun
)

var paramNames = []string{"contender", "direction", "distribution", "size", "speed"}

type model struct {
	state  state
	cursor int
	algs   []algorithms.Algorithm

	paramCursor  int
	contender    algorithms.Algorithm
	direction    sorting.Direction
	distribution dataset.Distribution
	size         int

	ctrl *playback.Controller
	gen  int
	err  error

	width  int
	height int
}

func NewInteractiveApp(cfg *config.Config) (*model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	primary, _ := algorithms.Parse(cfg.Algorithm)
	var contender algorithms.Algorithm
	if cfg.Contender != "" {
		contender, _ = algorithms.Parse(cfg.Contender)
	}
	dir, _ := sorting.ParseDirection(cfg.Direction)
	dist, _ := dataset.ParseDistribution(cfg.Distribution)

	m := &model{
		state:        stateMenu,
		algs:         algorithms.All(),
		contender:    contender,
		direction:    dir,
		distribution: dist,
		size:         cfg.Size,
		ctrl:         playback.New(cfg.PlaybackOptions(), sorting.Array{0}),
		width:        80,
		height:       24,
	}
	m.cursor = max(lo.IndexOf(m.algs, primary), 0)
	if err := m.ctrl.Generate(m.size, m.distribution); err != nil {
		return nil, err
	}
	return m, nil
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg struct{ gen int }

// schedule arms the next playback tick. Every call invalidates ticks that
// are still in flight, so at most one tick chain is live.
func (m *model) schedule() tea.Cmd {
	m.gen++
	gen := m.gen
	return tea.Tick(m.ctrl.Interval(), func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.gen != m.gen || m.state != stateRun {
			return m, nil
		}
		m.ctrl.Tick()
		if m.ctrl.State() == replay.Running {
			cmd := m.schedule()
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateRun:
		return m.runKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.algs)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.state = stateConfig
		m.paramCursor = 0
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(paramNames)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "s", "enter":
		m.err = m.setup()
		if m.err != nil {
			return m, nil
		}
		m.state = stateRun
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m *model) adjust(delta int) {
	switch paramNames[m.paramCursor] {
	case "contender":
		options := append([]algorithms.Algorithm{""}, m.algs...)
		m.contender = cycle(options, m.contender, delta)
	case "direction":
		m.direction = cycle([]sorting.Direction{sorting.Ascending, sorting.Descending}, m.direction, delta)
	case "distribution":
		m.distribution = cycle(dataset.Distributions(), m.distribution, delta)
	case "size":
		m.size = min(max(m.size+delta*sizeStep, dataset.MinSize), dataset.MaxSize)
	case "speed":
		m.ctrl.SetSpeed(m.ctrl.Speed() + delta*speedStep)
	}
}

func cycle[T comparable](options []T, current T, delta int) T {
	i := lo.IndexOf(options, current)
	n := len(options)
	return options[((i+delta)%n+n)%n]
}

// setup pushes the chosen parameters into the controller and draws a
// fresh array.
func (m *model) setup() error {
	if err := m.ctrl.ChooseAlgorithms(m.algs[m.cursor], m.contender); err != nil {
		return err
	}
	if err := m.ctrl.ChooseDirection(m.direction); err != nil {
		return err
	}
	return m.ctrl.Generate(m.size, m.distribution)
}

func (m model) runKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		m.ctrl.Stop()
		m.gen++
		m.state = stateConfig
		return m, tea.ClearScreen
	case "enter":
		return m.start(replay.Normal)
	case "t":
		return m.start(replay.Turbo)
	case " ", "p":
		if m.ctrl.TogglePause() && m.ctrl.State() == replay.Running {
			cmd := m.schedule()
			return m, cmd
		}
	case "n":
		m.ctrl.Step()
	case "esc", "s":
		m.ctrl.Stop()
		m.gen++
	case "r":
		ok, err := m.ctrl.Restart()
		m.err = err
		if ok {
			cmd := m.schedule()
			return m, cmd
		}
	case "g":
		m.err = m.ctrl.Generate(m.size, m.distribution)
	case "+", "=":
		m.ctrl.SetSpeed(m.ctrl.Speed() + speedStep)
	case "-", "_":
		m.ctrl.SetSpeed(m.ctrl.Speed() - speedStep)
	}
	return m, nil
}

func (m model) start(mode replay.Mode) (model, tea.Cmd) {
	ok, err := m.ctrl.Start(mode)
	m.err = err
	if !ok {
		return m, nil
	}
	cmd := m.schedule()
	return m, cmd
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateRun:
		return m.viewRun()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("s o r t v i z") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, alg := range m.algs {
		info := algorithms.Info(alg)
		desc := info.Average
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-16s", info.Name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-16s", info.Name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("      " + dim.Render(wrap(algorithms.Info(m.algs[m.cursor]).Description, 60, "      ")) + "\n")
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m model) paramValue(name string) string {
	switch name {
	case "contender":
		if m.contender == "" {
			return "none"
		}
		return string(m.contender)
	case "direction":
		return string(m.direction)
	case "distribution":
		return string(m.distribution)
	case "size":
		return fmt.Sprint(m.size)
	case "speed":
		return fmt.Sprintf("%d (%s)", m.ctrl.Speed(), m.ctrl.Delay().Round(time.Millisecond/10))
	}
	return ""
}

func (m model) viewConfig() string {
	var b strings.Builder

	info := algorithms.Info(m.algs[m.cursor])
	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(info.Name) + "  " + dim.Render(info.Average+" avg, "+info.Worst+" worst, "+info.Space+" space") + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, name := range paramNames {
		val := fmt.Sprintf("%14s", m.paramValue(name))
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dim.Render(val) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n      " + magenta.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  s start  esc back") + "\n")

	return b.String()
}

func (m model) viewRun() string {
	f := m.ctrl.Snapshot()
	width := max(m.width-6, 20)
	rows := max(m.height-10, 6)

	var b strings.Builder

	statusIcon, statusText := dim.Render("○"), dim.Render("idle")
	switch f.State {
	case replay.Running:
		statusIcon, statusText = green.Render("●"), green.Render("running")
		if f.Mode == replay.Turbo {
			statusText = yellow.Render("turbo")
		}
	case replay.Paused:
		statusIcon, statusText = yellow.Render("○"), yellow.Render("paused")
	case replay.Completed:
		statusIcon, statusText = green.Render("✔"), green.Render("sorted")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n\n",
		statusIcon, statusText,
		dim.Render(string(f.Direction)),
		dim.Render(fmt.Sprintf("speed %d", m.ctrl.Speed()))))

	for _, line := range strings.Split(strings.TrimRight(renderFrame(f, width, rows), "\n"), "\n") {
		b.WriteString("   " + line + "\n")
	}

	if m.err != nil {
		b.WriteString("\n   " + magenta.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + dim.Render("   enter run  t turbo  space pause  n step  s stop  r restart  g new  ±speed  q back") + "\n")

	return b.String()
}

func wrap(text string, width int, indent string) string {
	var b strings.Builder
	col := 0
	for i, word := range strings.Fields(text) {
		if i > 0 && col+1+len(word) > width {
			b.WriteString("\n" + indent)
			col = 0
		} else if i > 0 {
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}

func RunInteractive(cfg *config.Config) error {
	m, err := NewInteractiveApp(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
