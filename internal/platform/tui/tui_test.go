package tui

import (
	"context"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-derby/internal/core"
	"github.com/vovakirdan/tui-derby/internal/field"
	"github.com/vovakirdan/tui-derby/internal/playback"
	"github.com/vovakirdan/tui-derby/internal/race"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testController(t *testing.T, frames int) *playback.Controller {
	t.Helper()
	eng := race.NewEngine(nil, 200, 100)
	roster := race.NewRoster(
		race.NewRunner("Comet", core.V(60, 50), 0),
		race.NewRunner("Ghost", core.V(140, 50), math.Pi),
	)
	return playback.NewController(race.NewSimulation(eng, roster), playback.WithFrameCount(frames))
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionPlay},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPlay},
		{runes("p"), core.ActionPause},
		{runes("s"), core.ActionStop},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionStop},
		{runes("l"), core.ActionLive},
		{runes("d"), core.ActionDebug},
		{runes("t"), core.ActionTable},
		{runes("r"), core.ActionRestart},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("z"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestHeadingRune(t *testing.T) {
	tests := []struct {
		v    core.Vec2
		want rune
	}{
		{core.V(1, 0), '→'},
		{core.V(0, 1), '↓'},
		{core.V(-1, 0), '←'},
		{core.V(0, -1), '↑'},
		{core.V(1, 1), '↘'},
		{core.V(-1, -1), '↖'},
		{core.V(0, 0), stalledRune},
	}
	for _, tc := range tests {
		if got := HeadingRune(tc.v); got != tc.want {
			t.Errorf("HeadingRune(%v) = %q, expected %q", tc.v, got, tc.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorRed)
	s.DrawText(0, 1, "xy")

	out := RenderScreen(s)
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("expected 2 rows, got %d newlines", lines)
	}
	for _, want := range []string{"ab", "cd", "xy"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q: %q", want, out)
		}
	}
}

func TestDrawCourseAndRunners(t *testing.T) {
	alpha := make([]uint8, 200*100)
	for y := range 100 {
		for x := range 40 {
			alpha[y*200+x] = 255
		}
	}
	f := field.New(200, 100, alpha)

	s := core.NewScreen(20, 10)
	proj := core.Projection{CanvasW: 200, CanvasH: 100, Area: core.NewRect(0, 0, 20, 10)}
	DrawCourse(s, f, proj)

	if got := s.GetCell(0, 5); got.Rune != obstacleRune || got.Color != core.ColorDim {
		t.Errorf("cell (0,5) = %+v, expected obstacle", got)
	}
	if got := s.Get(15, 5); got != ' ' {
		t.Errorf("cell (15,5) = %q, expected blank", got)
	}

	snap := race.Snapshot{race.NewAgent(core.V(100, 50), 0, 10, 3)}
	runners := []race.Runner{{Tint: "#ff0000"}}
	DrawRunners(s, snap, runners, proj)

	got := s.GetCell(10, 5)
	if got.Rune != runnerRune {
		t.Errorf("runner rune = %q, expected %q", got.Rune, runnerRune)
	}
	if got.Color != core.Color("#ff0000") {
		t.Errorf("runner colour = %q, expected tint", got.Color)
	}
}

func TestDrawDebugMarksProbeHits(t *testing.T) {
	alpha := make([]uint8, 200*100)
	for y := range 100 {
		for x := range 40 {
			alpha[y*200+x] = 255
		}
	}
	eng := race.NewEngine(field.New(200, 100, alpha), 200, 100)
	snap := race.Snapshot{race.NewAgent(core.V(50, 50), 0, 16, 3)}

	s := core.NewScreen(200, 100)
	proj := core.Projection{CanvasW: 200, CanvasH: 100, Area: core.NewRect(0, 0, 200, 100)}
	DrawDebug(s, eng, snap, nil, proj)

	if got := s.Get(34, 50); got != probeRune {
		t.Errorf("west probe = %q, expected hit marker", got)
	}
	if got := s.Get(66, 50); got != ringRune {
		t.Errorf("east probe = %q, expected ring marker", got)
	}
	if got := s.Get(74, 50); got != '→' {
		t.Errorf("heading = %q, expected east arrow", got)
	}
	if got := s.Get(50, 50); got != runnerRune {
		t.Errorf("runner = %q, expected marker on top", got)
	}
}

func TestStandingsRows(t *testing.T) {
	standings := []race.Standing{
		{Index: 1, Distance: 42.4, Rank: 1},
		{Index: 0, Distance: 10, Rank: 2},
		{Index: 5, Distance: 10, Rank: 2},
	}
	runners := []race.Runner{{ID: 1, Name: "Comet"}, {ID: 2}}

	rows := StandingsRows(standings, runners)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][1] != "#2" || rows[0][2] != "42" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1][1] != "Comet" || rows[1][0] != "2" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][1] != "#5" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestModelPlaybackKeys(t *testing.T) {
	ctrl := testController(t, 5)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	var m tea.Model = NewModel(context.Background(), ctrl, "Test", cfg)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if ctrl.State() != playback.StatePlaying {
		t.Fatalf("space should play, state %s", ctrl.State())
	}

	m, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if ctrl.Frame() != 1 {
		t.Errorf("frame after one tick = %d, expected 1", ctrl.Frame())
	}

	m, _ = m.Update(runes("p"))
	if ctrl.State() != playback.StatePaused {
		t.Errorf("p should pause, state %s", ctrl.State())
	}
	if view := m.View(); !strings.Contains(view, "PAUSED") {
		t.Errorf("view should show paused state:\n%s", view)
	}

	m, _ = m.Update(runes("s"))
	if ctrl.State() != playback.StateStopped || ctrl.Frame() != 0 {
		t.Errorf("s should stop and rewind, state %s frame %d", ctrl.State(), ctrl.Frame())
	}

	_, cmd = m.Update(runes("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelPlaysToEndThenPauses(t *testing.T) {
	ctrl := testController(t, 3)
	m := NewModel(context.Background(), ctrl, "Test", core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60})

	var tm tea.Model = m
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeySpace})
	for range 3 {
		tm, _ = tm.Update(TickMsg{})
	}
	if ctrl.State() != playback.StatePaused || ctrl.Cache() != nil {
		t.Errorf("expected paused without cache after the last frame, state %s", ctrl.State())
	}

	dist := m.hud.odo.Distances()
	for i, d := range dist {
		if math.Abs(d-2*race.DefaultSpeed) > 1e-9 {
			t.Errorf("runner %d covered %v, expected %v", i, d, 2*race.DefaultSpeed)
		}
	}
}

func TestModelLiveMode(t *testing.T) {
	ctrl := testController(t, 3)
	var m tea.Model = NewModel(context.Background(), ctrl, "Test", core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60})

	m, _ = m.Update(runes("l"))
	if !ctrl.Live() {
		t.Fatal("l should switch live mode on")
	}
	m, _ = m.Update(TickMsg{})
	m.Update(TickMsg{})
	if got := ctrl.Simulation().Steps(); got != 2 {
		t.Errorf("live steps = %d, expected 2", got)
	}
}

func TestModelToggleTable(t *testing.T) {
	ctrl := testController(t, 3)
	var m tea.Model = NewModel(context.Background(), ctrl, "Test", core.RuntimeConfig{ScreenW: 80, ScreenH: 20, TickRate: 60})

	m, _ = m.Update(runes("t"))
	view := m.View()
	for _, want := range []string{"Rank", "Comet", "Ghost"} {
		if !strings.Contains(view, want) {
			t.Errorf("standings view missing %q", want)
		}
	}
}
