// Package viz renders the live terminal view of the closed-loop
// simulation: a stats panel, speed and throttle history graphs, and the
// car's position when a track profile is active.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pwasik/fuzzdrive/internal/drive"
	"github.com/pwasik/fuzzdrive/internal/fuzzy"
	"github.com/pwasik/fuzzdrive/internal/track"
)

const historyCapacity = 600

type TickMsg time.Time

// Model holds the simulation loop and the visualization buffers.
type Model struct {
	loop       *drive.Loop
	controller *fuzzy.Controller
	manual     *drive.Manual
	circuit    *track.Oval // nil for constant-target runs

	dt        float64
	frameRate int
	running   bool
	manualOn  bool

	last         drive.Sample
	speedHist    []float64
	throttleHist []float64
	showHelp     bool
}

// NewModel wires the loop into a Bubble Tea model. circuit may be nil.
func NewModel(loop *drive.Loop, controller *fuzzy.Controller, circuit *track.Oval, dt float64, frameRate int) Model {
	return Model{
		loop:         loop,
		controller:   controller,
		manual:       drive.NewManual(50),
		circuit:      circuit,
		dt:           dt,
		frameRate:    frameRate,
		running:      true,
		speedHist:    make([]float64, 0, historyCapacity),
		throttleHist: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "m":
			m.toggleManual()
		case "+", "=":
			m.loop.SetTarget(m.loop.Target() + 1)
		case "-", "_":
			m.loop.SetTarget(m.loop.Target() - 1)
		case "up", "k":
			if m.manualOn {
				m.manual.Set(clamp(m.manual.Value+5, 0, 100))
			}
		case "down", "j":
			if m.manualOn {
				m.manual.Set(clamp(m.manual.Value-5, 0, 100))
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	s, err := m.loop.Step(m.dt)
	if err != nil {
		return
	}
	m.last = s

	m.speedHist = append(m.speedHist, s.Speed)
	if len(m.speedHist) > historyCapacity {
		m.speedHist = m.speedHist[1:]
	}
	m.throttleHist = append(m.throttleHist, s.Throttle)
	if len(m.throttleHist) > historyCapacity {
		m.throttleHist = m.throttleHist[1:]
	}
}

func (m *Model) reset() {
	m.loop.Reset()
	m.last = drive.Sample{}
	m.speedHist = m.speedHist[:0]
	m.throttleHist = m.throttleHist[:0]
}

func (m *Model) toggleManual() {
	m.manualOn = !m.manualOn
	if m.manualOn {
		m.manual.Set(m.last.Throttle)
		m.loop.SetSource(m.manual)
	} else {
		m.loop.SetSource(drive.Fuzzy{Controller: m.controller})
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// View renders the TUI interface.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("FUZZDRIVE") + "\n")

	status := statusRunning.Render("RUNNING")
	if !m.running {
		status = statusPaused.Render("PAUSED")
	}
	mode := "fuzzy"
	if m.manualOn {
		mode = statusManual.Render(fmt.Sprintf("manual (%.0f%%)", m.manual.Value))
	}

	stats := []string{
		row("status", status),
		row("mode", mode),
		row("time", fmt.Sprintf("%.1f s", m.loop.Time())),
		row("speed", fmt.Sprintf("%.2f", m.last.Speed)),
		row("target", fmt.Sprintf("%.2f", m.loop.Target())),
		row("error", fmt.Sprintf("%+.2f", m.last.SpeedError)),
		row("accel", fmt.Sprintf("%+.2f", m.last.Acceleration)),
		row("throttle", fmt.Sprintf("%.1f %%", m.last.Throttle)),
		row("distance", fmt.Sprintf("%.1f m", m.last.Position)),
	}
	if m.circuit != nil {
		x, y, heading := m.circuit.Position(m.last.Position)
		lap := m.last.Position / m.circuit.Perimeter()
		stats = append(stats,
			row("lap", fmt.Sprintf("%.2f", lap)),
			row("track pos", fmt.Sprintf("(%.0f, %.0f) @ %.0f°", x, y, heading*180/3.14159265)),
		)
	}
	s.WriteString(statsStyle.Render(strings.Join(stats, "\n")))
	s.WriteString("\n")

	if len(m.speedHist) > 1 {
		graph := asciigraph.Plot(m.speedHist,
			asciigraph.Height(8),
			asciigraph.Width(72),
			asciigraph.Caption("speed"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}
	if len(m.throttleHist) > 1 {
		graph := asciigraph.Plot(m.throttleHist,
			asciigraph.Height(6),
			asciigraph.Width(72),
			asciigraph.Caption("throttle"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}

	help := "space pause · r reset · m manual · +/- target · q quit · ? more"
	if m.showHelp {
		help = lipgloss.JoinVertical(lipgloss.Left,
			"space  pause/resume",
			"r      reset car and history",
			"m      toggle manual throttle",
			"↑/↓    adjust manual throttle",
			"+/-    adjust target speed",
			"q      quit",
		)
	}
	s.WriteString(helpStyle.Render(help))

	return s.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
