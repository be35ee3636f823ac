package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/membrane/internal/engine"
	"github.com/san-kum/membrane/internal/osmo"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 120

	// world span shown: the engine's outer containment is 2.4R, so
	// 2.6R per side leaves a margin
	viewSpanRadii = 2.6
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type paramField int

const (
	fieldRadius paramField = iota
	fieldGradient
	fieldTemperature
	fieldCount
)

// Model drives the engine from the terminal frame loop: one Step(dt)
// per tick, parameters applied between steps only.
type Model struct {
	eng     *engine.Engine
	dt      float64
	canvas  *Canvas
	running bool

	selected paramField

	inHist   []float64
	outHist  []float64
	lastRate osmo.RateSample
	lastOcc  osmo.Occupancy
}

func NewModel(eng *engine.Engine, dt float64) *Model {
	m := &Model{
		eng:     eng,
		dt:      dt,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		running: true,
		inHist:  make([]float64, 0, historyCapacity),
		outHist: make([]float64, 0, historyCapacity),
	}

	agg := eng.Rates()
	agg.OnOccupancy(func(occ osmo.Occupancy) {
		m.lastOcc = occ
	})
	agg.OnRates(func(s osmo.RateSample) {
		m.lastRate = s
		m.inHist = appendCapped(m.inHist, s.InRate)
		m.outHist = appendCapped(m.outHist, s.OutRate)
	})

	return m
}

// RunLive blocks until the user quits the live view.
func RunLive(eng *engine.Engine, dt float64) error {
	p := tea.NewProgram(NewModel(eng, dt))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.eng.Reseed()
			m.inHist = m.inHist[:0]
			m.outHist = m.outHist[:0]
			m.lastRate = osmo.RateSample{}
		case "tab":
			m.selected = (m.selected + 1) % fieldCount
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		}
	case TickMsg:
		if m.running {
			m.eng.Step(m.dt)
		}
		return m, tick()
	}
	return m, nil
}

// adjustParam nudges the selected slider. Configure clamps and reseeds
// on gradient/radius changes, exactly like an external slider host.
func (m *Model) adjustParam(dir float64) {
	p := m.eng.Params()
	switch m.selected {
	case fieldRadius:
		p.RadiusUm += dir * 1.0
	case fieldGradient:
		p.Gradient += dir * 0.05
	case fieldTemperature:
		p.TemperatureC += dir * 2.0
	}
	m.eng.Configure(p)
}

func (m *Model) draw() {
	m.canvas.Clear()

	p := m.eng.Params()
	cw, ch := canvasWidth*2, canvasHeight*4
	cx, cy := cw/2, ch/2
	span := p.RadiusUm * viewSpanRadii
	scale := float64(ch) / (2 * span)

	project := func(v osmo.Vec3) (int, int) {
		return cx + int(v.X*scale), cy - int(v.Y*scale)
	}

	m.canvas.DrawCircle(cx, cy, int(p.RadiusUm*scale))

	for _, pt := range m.eng.Pool().ActiveParticles() {
		x, y := project(pt.Pos)
		m.canvas.Set(x, y)
	}

	// crossing bursts grow with age until they expire
	ttl := m.eng.Events().TTL()
	for _, ev := range m.eng.Events().Events() {
		x, y := project(ev.Pos)
		size := 1 + int(2*ev.Age/ttl)
		m.canvas.DrawLine(x-size, y, x+size, y)
		m.canvas.DrawLine(x, y-size, x, y+size)
	}
}

func (m *Model) View() string {
	m.draw()

	p := m.eng.Params()
	occ := m.eng.Pool().Occupancy()

	var s strings.Builder
	s.WriteString(headerStyle.Render("MEMBRANE") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.eng.Time())) + "\n")
	s.WriteString(labelStyle.Render("Regime") + valueStyle.Render(m.eng.Permeability().Name()) + "\n")
	s.WriteString(labelStyle.Render("Inside") + valueStyle.Render(fmt.Sprintf("%d", occ.Inside)) + "\n")
	s.WriteString(labelStyle.Render("Outside") + valueStyle.Render(fmt.Sprintf("%d", occ.Outside)) + "\n")
	s.WriteString(labelStyle.Render("In rate") + valueStyle.Render(fmt.Sprintf("%.1f/s", m.lastRate.InRate)) + "\n")
	s.WriteString(labelStyle.Render("Out rate") + valueStyle.Render(fmt.Sprintf("%.1f/s", m.lastRate.OutRate)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	fields := []struct {
		field paramField
		name  string
		value float64
		lo    float64
		hi    float64
	}{
		{fieldRadius, "radius", p.RadiusUm, osmo.RadiusMinUm, osmo.RadiusMaxUm},
		{fieldGradient, "gradient", p.Gradient, osmo.GradientMin, osmo.GradientMax},
		{fieldTemperature, "temp", p.TemperatureC, osmo.TempMinC, osmo.TempMaxC},
	}
	for _, f := range fields {
		line := fmt.Sprintf("%-9s %s %.2f", f.name, bar(f.value, f.lo, f.hi), f.value)
		if f.field == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if len(m.inHist) > 1 {
		chart := asciigraph.Plot(m.inHist, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("in rate"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.outHist) > 1 {
		chart := asciigraph.Plot(m.outHist, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("out rate"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reseed Q:Quit\nTab:Select ↑↓:Tune"))

	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// bar renders a fixed-width gauge marking value's position within [lo, hi].
func bar(value, lo, hi float64) string {
	const width = 10
	frac := 0.0
	if hi > lo {
		frac = (value - lo) / (hi - lo)
	}
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}
