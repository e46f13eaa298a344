package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/scenario"
	"github.com/san-kum/rigidsim/internal/shape"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	frameInterval   = time.Second / 60
	maxCatchUp      = 50
	historyCapacity = 600
	trailCapacity   = 120
)

// TickMsg drives the fixed-step loop once per frame.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Builder constructs a fresh scene. Reset calls it again.
type Builder func() (*scenario.Scene, error)

// Model steps a scene in real time and draws it in the terminal.
type Model struct {
	build  Builder
	scene  *scenario.Scene
	clock  *Clock
	canvas *Canvas
	view   Viewport
	camera *Camera

	running  bool
	threeD   bool
	showHelp bool
	speed    float64
	theme    Theme
	styles   Styles

	energy   []float64
	contacts []float64
	trails   map[string][]linalg.Vec3
	err      error
}

func NewModel(build Builder) (Model, error) {
	m := Model{
		build:  build,
		canvas: NewCanvas(canvasWidth, canvasHeight),
		speed:  1,
		theme:  Themes[0],
	}
	m.styles = NewStyles(m.theme)
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	m.running = true
	return m, nil
}

func (m *Model) reset() error {
	scene, err := m.build()
	if err != nil {
		return err
	}
	m.scene = scene
	m.clock = NewClock(scene.Config.Dt, maxCatchUp)
	m.energy = m.energy[:0]
	m.contacts = m.contacts[:0]
	m.trails = make(map[string][]linalg.Vec3, len(scene.Order))

	points := make([]linalg.Vec3, 0, len(scene.Order)+1)
	for _, name := range scene.Order {
		b := scene.Bodies[name]
		r := b.BoundingSphere().Radius
		p := b.Position()
		points = append(points, p.Add(linalg.Vec3{r, r, 0}), p.Sub(linalg.Vec3{r, r, 0}))
	}
	points = append(points, linalg.Vec3{})
	m.view = FitViewport(points, 1)
	center := linalg.Vec3{(m.view.MinX + m.view.MaxX) / 2, (m.view.MinY + m.view.MaxY) / 2, 0}
	m.camera = NewCamera(center, 3*(m.view.MaxY-m.view.MinY))
	m.record()
	return nil
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.clock.Reset()
		case "r":
			m.err = m.reset()
		case "m":
			m.threeD = !m.threeD
		case "t":
			m.theme = nextTheme(m.theme)
			m.styles = NewStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		case ".", ">":
			m.speed = min(8, m.speed*2)
		case ",", "<":
			m.speed = max(0.125, m.speed/2)
		case "n":
			if !m.running {
				m.step(1)
			}
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
		}
	case TickMsg:
		if m.running {
			m.step(m.clock.Tick(time.Time(msg), m.speed))
		}
		return m, tick()
	}
	return m, nil
}

// step runs n fixed updates, stopping at the scenario duration.
func (m *Model) step(n int) {
	w := m.scene.World
	for i := 0; i < n; i++ {
		if w.Time() >= m.scene.Config.Duration {
			m.running = false
			return
		}
		w.Update(m.scene.Config.Dt)
		m.record()
	}
}

func (m *Model) record() {
	w := m.scene.World
	m.energy = appendBounded(m.energy, metrics.TotalEnergy(w.Bodies(), m.scene.Gravity()), historyCapacity)
	m.contacts = appendBounded(m.contacts, float64(w.Stats().Contacts), historyCapacity)
	for _, name := range m.scene.Order {
		b := m.scene.Bodies[name]
		if b.HasFiniteMass() {
			m.trails[name] = appendBounded(m.trails[name], b.Position(), trailCapacity)
		}
	}
}

func appendBounded[T any](s []T, v T, limit int) []T {
	if len(s) >= limit {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.threeD {
		m.draw3D()
		return
	}

	floor := m.floorY()
	if floor >= m.view.MinY && floor <= m.view.MaxY {
		x0, y := m.view.ToPixel(linalg.Vec3{m.view.MinX, floor, 0}, m.canvas)
		x1, _ := m.view.ToPixel(linalg.Vec3{m.view.MaxX, floor, 0}, m.canvas)
		m.canvas.DrawLine(x0, y, x1, y)
	}

	for _, trail := range m.trails {
		for _, p := range trail {
			m.canvas.Set(m.view.ToPixel(p, m.canvas))
		}
	}

	scale := m.view.Scale(m.canvas)
	for _, name := range m.scene.Order {
		m.drawBody(m.scene.Bodies[name], scale)
	}
}

func (m *Model) drawBody(b body.Body, scale float64) {
	x, y := m.view.ToPixel(b.Position(), m.canvas)
	switch b.Shape().Kind() {
	case shape.KindPoint:
		m.canvas.Set(x, y)
		m.canvas.Set(x+1, y)
		m.canvas.Set(x, y+1)
		m.canvas.Set(x+1, y+1)
	default:
		m.canvas.DrawCircle(x, y, int(b.BoundingSphere().Radius*scale+0.5))
	}
}

func (m *Model) draw3D() {
	var wf Wireframe
	half := (m.view.MaxX - m.view.MinX) / 2
	wf.AddFloor(m.camera.Target, half, 7, m.floorY())
	for _, name := range m.scene.Order {
		wf.AddBody(m.scene.Bodies[name])
	}
	Render3D(m.canvas, &wf, m.camera)
}

// floorY is the height of the first floor contact, or zero.
func (m *Model) floorY() float64 {
	for _, c := range m.scene.Config.Contacts {
		if c.Type == config.ContactFloor {
			return c.FloorY
		}
	}
	return 0
}

func (m Model) View() string {
	if m.err != nil {
		return m.styles.Warning.Render("error: "+m.err.Error()) + "\n"
	}
	m.draw()

	sc := m.scene.Config
	w := m.scene.World
	stats := w.Stats()

	status := m.styles.Running.Render("RUNNING")
	switch {
	case !m.running && w.Time() >= sc.Duration:
		status = m.styles.Paused.Render("DONE")
	case !m.running:
		status = m.styles.Paused.Render("PAUSED")
	}

	mode := "side"
	if m.threeD {
		mode = "3d"
	}

	var s strings.Builder
	s.WriteString(m.styles.Title.Render(strings.ToUpper(sc.Name)) + "  " + status + "\n")
	s.WriteString(m.styles.Hint.Render(sc.Description) + "\n\n")
	s.WriteString(m.styles.Stat("time", fmt.Sprintf("%.3fs / %.1fs", w.Time(), sc.Duration)) + "\n")
	s.WriteString(ProgressBar(w.Time()/sc.Duration, 28) + "\n")
	s.WriteString(m.styles.Stat("steps", w.Steps()) + "\n")
	s.WriteString(m.styles.Stat("bodies", len(m.scene.Order)) + "\n")
	s.WriteString(m.styles.Stat("contacts", stats.Contacts) + "\n")
	s.WriteString(m.styles.Stat("iterations", stats.Iterations) + "\n")
	if stats.Dropped > 0 {
		s.WriteString(m.styles.Label.Render(fmt.Sprintf("%-11s", "dropped")) + m.styles.Warning.Render(fmt.Sprint(stats.Dropped)) + "\n")
	}
	if d := m.clock.Dropped(); d > 0 {
		s.WriteString(m.styles.Label.Render(fmt.Sprintf("%-11s", "lagged")) + m.styles.Warning.Render(fmt.Sprint(d)) + "\n")
	}
	s.WriteString(m.styles.Stat("speed", fmt.Sprintf("%gx", m.speed)) + "\n")
	s.WriteString(m.styles.Stat("view", mode) + "\n")
	if len(m.energy) > 0 {
		s.WriteString(m.styles.Stat("energy", fmt.Sprintf("%.3f", m.energy[len(m.energy)-1])) + "\n")
	}
	s.WriteString("\n" + m.styles.Label.Render("contacts ") + Sparkline(m.contacts, 20) + "\n")
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("energy"))
		s.WriteString("\n" + chart + "\n")
	}

	left := m.styles.Panel.Render(m.styles.Body.Render(m.canvas.String()))
	right := m.styles.Panel.Render(s.String())
	out := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.showHelp {
		out += "\n" + m.styles.TitledPanel("keys", helpText)
	} else {
		out += "\n" + m.styles.Hint.Render("space pause  n step  r reset  m view  t theme  ? help  q quit")
	}
	return out + "\n"
}

const helpText = `space   pause or resume
n       single step while paused
r       rebuild the scene
m       toggle side and 3d view
arrows  orbit the 3d camera
+ -     zoom the 3d camera
< >     halve or double speed
t       cycle theme
q       quit`

// Run opens the live view on the terminal.
func Run(build Builder) error {
	m, err := NewModel(build)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
