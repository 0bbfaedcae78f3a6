package tui

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/armrig/internal/animate"
	"github.com/san-kum/armrig/internal/metrics"
	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/viz"
)

const (
	hudLines     = 7
	historyLen   = 60
	orbitStep    = math.Pi / 18
	frameTime    = 16 * time.Millisecond
	pickSlop     = 3.0
	minCanvasRow = 4
)

type model struct {
	rot    animate.Rotator
	cam    pointer.Camera
	canvas *viz.Canvas
	scene  *viz.Scene
	theme  viz.Theme

	history []float64
	width   int
	height  int
}

// New builds the terminal host around rot, viewed from cam.
func New(rot animate.Rotator, cam pointer.Camera) tea.Model {
	m := model{
		rot:     rot,
		cam:     cam,
		scene:   viz.NewScene(),
		theme:   viz.Themes[0],
		history: make([]float64, 0, historyLen),
	}
	return m.resize(80, 24)
}

func (m model) resize(w, h int) model {
	m.width, m.height = w, h
	rows := h - hudLines
	if rows < minCanvasRow {
		rows = minCanvasRow
	}
	m.canvas = viz.NewCanvas(w, rows)
	m.cam.Aspect = m.canvas.Aspect()
	return m
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameTime, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tickMsg:
		m.rot.Tick(m.cam)
		m.history = append(m.history, orient.Degrees(metrics.Distance(m.rot.Arm())))
		if len(m.history) > historyLen {
			m.history = m.history[1:]
		}
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.rot.Reset()
		m.history = m.history[:0]
	case "t":
		m.theme = m.theme.Next()
	case "g":
		if m.scene.GridHalf > 0 {
			m.scene.GridHalf = 0
		} else {
			m.scene.GridHalf = 4
		}
	case "left", "h":
		m.cam = m.cam.Orbit(-orbitStep)
	case "right", "l":
		m.cam = m.cam.Orbit(orbitStep)
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	// Releases end the drag wherever they land, HUD rows included.
	if msg.Action == tea.MouseActionRelease {
		if id, ok := m.rot.Active(); ok {
			log.Printf("release %s", id)
		}
		m.rot.PointerUp()
		return m
	}
	inside := msg.Y >= 0 && msg.Y < m.canvas.Height
	ndc := viz.CellToNDC(m.canvas, msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if !inside {
			m.rot.PointerMiss()
			return m
		}
		arm := m.rot.Arm()
		id, ok := arm.PickRadius(m.cam.Ray(ndc), arm.HandleRadius*pickSlop)
		if !ok {
			m.rot.PointerMiss()
			return m
		}
		if err := m.rot.PointerDown(id, ndc); err != nil {
			log.Printf("pointer down %s: %v", id, err)
			return m
		}
		log.Printf("grab %s at %.3f,%.3f", id, ndc[0], ndc[1])
	case tea.MouseActionMotion:
		if inside {
			m.rot.PointerMove(ndc)
		}
	}
	return m
}

func (m model) View() string {
	active, dragging := m.rot.Active()
	m.scene.Draw(m.canvas, m.rot.Arm(), m.cam, active)

	var b strings.Builder
	b.WriteString(m.canvas.Render(m.theme))

	status := viz.StatusIdle.Render("IDLE")
	if dragging {
		status = viz.StatusDragging.Render("DRAG " + strings.ToUpper(string(active)))
	}
	b.WriteString(viz.Title.Render("armrig") + "  " + status + "  " +
		viz.Subtle.Render(fmt.Sprintf("tick %d  theme %s", m.rot.Ticks(), m.theme.Name)) + "\n")
	b.WriteString(viz.Separator(m.width) + "\n")

	arm := m.rot.Arm()
	for i, j := range arm.Joints {
		if j.Rigid {
			continue
		}
		swing := orient.Degrees(arm.Swing(i))
		limit := orient.Degrees(j.Limits.Cone())
		b.WriteString(fmt.Sprintf("%-9s %s %s\n",
			j.ID, viz.SwingBar(swing, limit, 20), viz.Metric("swing", swing, "°")))
	}

	gap := 0.0
	if n := len(m.history); n > 0 {
		gap = m.history[n-1]
	}
	b.WriteString(viz.Metric("error", gap, "°") + " " + viz.Sparkline(m.history, 30) + "\n")
	b.WriteString(viz.KeyHint.Render("drag handles with the mouse · ←/→ orbit · r reset · t theme · g grid · q quit"))

	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(b.String())
}

// Run starts the terminal host and blocks until the user quits.
func Run(rot animate.Rotator, cam pointer.Camera) error {
	p := tea.NewProgram(New(rot, cam), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
