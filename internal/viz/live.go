package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/animsim/internal/config"
	"github.com/san-kum/animsim/internal/particles"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	frameRate       = 60
)

type TickMsg time.Time

// ReloadMsg is sent when the watched scene file changes.
type ReloadMsg struct{ Path string }

// Model is a live view of one particle scene.
type Model struct {
	name      string
	cfg       *config.Config
	sys       *particles.System
	colliders []particles.ColliderRef
	wire      *Wireframe
	camera    *Camera
	canvas    *Canvas
	t, dt     float64
	paused    bool
	showHelp  bool
	showAxes  bool
	counts    []float64
	energies  []float64
	reload    <-chan string
	status    string
}

// NewModel builds the scene described by cfg and starts its emitter.
func NewModel(cfg *config.Config) (Model, error) {
	m := Model{
		name:   cfg.Name,
		camera: NewCamera(),
		canvas: NewCanvas(width, height),
	}
	if err := m.apply(cfg); err != nil {
		return Model{}, err
	}
	return m, nil
}

// WithReload makes the view reload its scene from the paths received on
// events.
func (m Model) WithReload(events <-chan string) Model {
	m.reload = events
	return m
}

// apply swaps in a new scene and restarts the emitter.
func (m *Model) apply(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	sys, err := cfg.NewSystem()
	if err != nil {
		return err
	}
	colliders, err := cfg.BuildColliders()
	if err != nil {
		return err
	}

	m.cfg = cfg
	m.sys = sys
	m.colliders = colliders
	m.wire = ColliderWireframe(colliders)
	m.dt = cfg.Dt
	m.t = 0
	m.counts = m.counts[:0]
	m.energies = m.energies[:0]
	m.sys.Start()
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitForReload(events <-chan string) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-events
		if !ok {
			return nil
		}
		return ReloadMsg{Path: path}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitForReload(m.reload))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "s":
			if m.sys.IsRunning() {
				m.sys.Stop()
			} else {
				m.sys.Start()
				m.t = 0
			}
		case "r":
			m.sys.Reset()
			m.t = 0
		case "n":
			m.paused = true
			m.step()
		case "left", "h":
			m.camera.Orbit(-0.1, 0)
		case "right", "l":
			m.camera.Orbit(0.1, 0)
		case "up", "k":
			m.camera.Orbit(0, 0.1)
		case "down", "j":
			m.camera.Orbit(0, -0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "a":
			m.showAxes = !m.showAxes
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tick()
	case ReloadMsg:
		cfg, err := config.Load(msg.Path)
		if err == nil {
			if cfg.Name == "" || cfg.Name == "default" {
				cfg.Name = m.name
			}
			err = m.apply(cfg)
		}
		if err != nil {
			m.status = "reload failed: " + err.Error()
		} else {
			m.status = "reloaded " + time.Now().Format("15:04:05")
		}
		return m, waitForReload(m.reload)
	}
	return m, nil
}

// step advances the scene one frame. A stopped system still records
// history so the charts keep scrolling.
func (m *Model) step() {
	m.sys.Update(m.dt, m.colliders)
	if m.sys.IsRunning() {
		m.t += m.dt
	}

	var energy float64
	for _, p := range m.sys.Particles() {
		energy += p.KineticEnergy()
	}
	m.counts = appendCapped(m.counts, float64(m.sys.Len()))
	m.energies = appendCapped(m.energies, energy)
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) draw() {
	m.canvas.Clear()
	Render3D(m.canvas, m.wire, m.camera)
	if m.showAxes {
		Render3D(m.canvas, AxesWireframe(2), m.camera)
	}
	RenderParticles(m.canvas, m.sys.Particles(), m.camera)
}

func (m Model) View() string {
	m.draw()
	theme := CurrentTheme
	canvasView := canvasStyle.Foreground(theme.Particles).Render(m.canvas.String())

	status := "RUNNING"
	switch {
	case !m.sys.IsRunning():
		status = "STOPPED"
	case m.paused:
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(theme.Accent).Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(status + "\n")
	if m.status != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(m.status) + "\n")
	}
	s.WriteString("\n")

	if len(m.energies) > 1 {
		chart := asciigraph.Plot(m.energies, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Foreground(theme.Accent).Render(chart) + "\n")
	}

	cfg := m.sys.Config()
	stats := m.sys.Stats()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Particles", fmt.Sprintf("%d/%d", m.sys.Len(), cfg.MaxParticles))
	s.WriteString(labelStyle.Render("Pool") + ProgressBar(float64(m.sys.Len())/float64(cfg.MaxParticles), 20) + "\n")
	row("Count", Sparkline(m.counts, 20))
	row("Emitted", fmt.Sprintf("%d", stats.Emitted))
	row("Evicted", fmt.Sprintf("%d", stats.Evicted))
	row("Collisions", fmt.Sprintf("%d", stats.Collisions))
	row("Colliders", fmt.Sprintf("%d", len(m.colliders)))
	row("Integrator", cfg.Integrator)
	row("Collision", cfg.Collision)

	s.WriteString(helpStyle.Render("\n" + Separator(24) + "\nSP:Pause S:Start/Stop R:Reset\nN:Step ←→↑↓:Orbit +/-:Zoom\nA:Axes T:Theme ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume the view    ║
║  S        - Stop/Start the emitter   ║
║  R        - Clear all particles      ║
║  N        - Single step (pauses)     ║
║  Arrows   - Orbit the camera         ║
║  +/-      - Zoom                     ║
║  A        - Toggle axes              ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
