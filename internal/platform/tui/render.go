package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-derby/internal/core"
	"github.com/vovakirdan/tui-derby/internal/field"
	"github.com/vovakirdan/tui-derby/internal/race"
)

const (
	obstacleRune = '░'
	runnerRune   = '●'
	stalledRune  = '○'
	ringRune     = '·'
	probeRune    = 'x'
)

// headingRunes are indexed by heading in eighths of a turn, clockwise from
// east. Canvas y grows downward, as on screen.
var headingRunes = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// styleFor returns the lipgloss style for a cell colour.
func styleFor(c core.Color) lipgloss.Style {
	if c == core.ColorDefault {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[core.Color]lipgloss.Style)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = styleFor(startColor)
				styles[startColor] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// HeadingRune returns the arrow closest to velocity v, or the stalled
// marker for a zero vector.
func HeadingRune(v core.Vec2) rune {
	if v.IsZero() {
		return stalledRune
	}
	eighth := int(math.Round(v.Angle() / (math.Pi / 4)))
	return headingRunes[((eighth%8)+8)%8]
}

// DrawCourse shades every cell whose centre lies on an obstacle.
func DrawCourse(s *core.Screen, f *field.Field, p core.Projection) {
	if f == nil {
		return
	}
	for y := p.Area.Y; y < p.Area.Bottom(); y++ {
		for x := p.Area.X; x < p.Area.Right(); x++ {
			pt := p.ToCanvas(x, y)
			if f.IsObstacle(pt.X, pt.Y) {
				s.SetColored(x, y, obstacleRune, core.ColorDim)
			}
		}
	}
}

// DrawRunners places one marker per agent, coloured by the runner's tint.
// runners may be shorter than snap; missing entries use the palette.
func DrawRunners(s *core.Screen, snap race.Snapshot, runners []race.Runner, p core.Projection) {
	for i, a := range snap {
		c := core.PaletteColor(i)
		if i < len(runners) {
			c = core.TintColor(runners[i].Tint, i)
		}
		r := runnerRune
		if a.Stalled() {
			r = stalledRune
		}
		x, y := p.ToCell(a.Pos)
		s.SetColored(x, y, r, c)
	}
}

// DrawDebug overlays each agent's radius ring, heading arrow and probe
// hits. Runners are drawn again on top so the overlay never hides them.
func DrawDebug(s *core.Screen, eng *race.Engine, snap race.Snapshot, runners []race.Runner, p core.Projection) {
	for _, a := range snap {
		for _, h := range eng.Probe(a) {
			x, y := p.ToCell(h.Point)
			if h.Hit {
				s.SetColored(x, y, probeRune, core.ColorRed)
			} else {
				s.SetColored(x, y, ringRune, core.ColorGray)
			}
		}
		ahead := a.Pos.Add(core.FromAngle(a.Vel.Angle(), a.Radius*1.5))
		x, y := p.ToCell(ahead)
		s.SetColored(x, y, HeadingRune(a.Vel), core.ColorYellow)
	}
	DrawRunners(s, snap, runners, p)
}
