package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-derby/internal/core"
	"github.com/vovakirdan/tui-derby/internal/playback"
	"github.com/vovakirdan/tui-derby/internal/race"
)

const (
	tableWidth  = 34 // standings table plus gap
	chromeLines = 2  // status line and help
)

// hud collects per-frame data from the controller's frame listener.
// It is shared by every copy of the Model.
type hud struct {
	odo    race.Odometer
	totals race.Stats
	last   race.Stats
}

// Model is the Bubble Tea model for watching a race.
type Model struct {
	ctx      context.Context
	ctrl     *playback.Controller
	hud      *hud
	title    string
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	table    table.Model
	debug    bool
	standing bool
	notice   string
	quitting bool
}

// NewModel creates a model playing ctrl. title names the course in the
// status line.
func NewModel(ctx context.Context, ctrl *playback.Controller, title string, cfg core.RuntimeConfig) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	h := &hud{}
	h.odo.Reset(ctrl.Current())
	ctrl.OnFrame(func(frame int, s race.Snapshot) {
		if frame == 0 {
			h.odo.Reset(s)
			h.totals = race.Stats{}
			h.last = race.Stats{}
			return
		}
		h.odo.Observe(s)
		if c := ctrl.Cache(); c != nil && frame < c.Len() {
			h.last = c.Stats(frame)
			h.totals.Add(h.last)
		}
	})

	m := Model{
		ctx:    ctx,
		ctrl:   ctrl,
		hud:    h,
		title:  title,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.layout()
	return m
}

// layout sizes the race screen and the table to the current window.
func (m *Model) layout() {
	w := m.config.ScreenW
	if m.standing {
		w -= tableWidth
	}
	h := m.config.ScreenH - chromeLines
	m.screen = core.NewScreen(max(w, 1), max(h, 1))
	m.table = newStandingsTable(max(h-2, 1))
	m.help.Width = m.config.ScreenW
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		m.ctrl.Advance()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.notice = m.saveScreenshot()
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionPlay:
		m.play()
	case core.ActionPause:
		m.ctrl.Pause()
	case core.ActionStop:
		m.ctrl.Stop()
		m.notice = ""
	case core.ActionLive:
		m.ctrl.SetLive(!m.ctrl.Live())
	case core.ActionDebug:
		m.debug = !m.debug
	case core.ActionTable:
		m.standing = !m.standing
		m.layout()
	case core.ActionRestart:
		m.ctrl.Stop()
		m.play()
	}
	return m, nil
}

func (m *Model) play() {
	err := m.ctrl.Play(m.ctx)
	switch {
	case err == nil:
		m.notice = ""
	case errors.Is(err, playback.ErrResourceExhausted):
		m.notice = "race too long to cache, stepping live"
	default:
		m.notice = err.Error()
	}
}

// saveScreenshot writes the uncoloured race screen to ~/.derby/screenshots
// and returns a notice for the status line.
func (m *Model) saveScreenshot() string {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshot failed: " + err.Error()
	}
	dir := filepath.Join(home, ".derby", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}

	name := fmt.Sprintf("race_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "saved " + path
}

// draw renders course and runners into the screen buffer.
func (m *Model) draw() {
	m.screen.Clear()
	sim := m.ctrl.Simulation()
	eng := sim.Engine()
	proj := core.Projection{
		CanvasW: eng.Width(),
		CanvasH: eng.Height(),
		Area:    core.NewRect(0, 0, m.screen.Width(), m.screen.Height()),
	}
	snap := m.ctrl.Current()
	runners := sim.Roster().Runners()

	DrawCourse(m.screen, eng.Field(), proj)
	if m.debug {
		DrawDebug(m.screen, eng, snap, runners, proj)
	} else {
		DrawRunners(m.screen, snap, runners, proj)
	}
}

// StatusLine summarises playback state for the bottom of the screen.
func (m Model) StatusLine() string {
	frame := m.ctrl.Frame()
	if m.ctrl.State() == playback.StateStopped {
		frame = m.ctrl.Simulation().Steps()
	}
	live := "off"
	if m.ctrl.Live() {
		live = "on"
	}

	parts := []string{
		m.title,
		strings.ToUpper(string(m.ctrl.State())),
		fmt.Sprintf("frame %d/%d", frame, m.ctrl.FrameCount()),
		"live " + live,
		fmt.Sprintf("bounces %d walls %d collisions %d",
			m.hud.totals.ObstacleBounces, m.hud.totals.WallBounces, m.hud.totals.Collisions),
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	return strings.Join(parts, "  ")
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	body := RenderScreen(m.screen)
	if m.standing {
		m.table.SetRows(StandingsRows(m.hud.odo.Standings(), m.ctrl.Simulation().Roster().Runners()))
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.table.View())
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		statusStyle.Render(m.StatusLine()),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// Run starts the Bubble Tea program watching ctrl.
func Run(ctrl *playback.Controller, title string, cfg core.RuntimeConfig) error {
	model := NewModel(context.Background(), ctrl, title, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
