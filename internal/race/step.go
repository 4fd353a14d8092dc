package race

import (
	"math"

	"github.com/vovakirdan/tui-derby/internal/core"
	"github.com/vovakirdan/tui-derby/internal/field"
)

// ProbeSamples is the number of points sampled around an agent's
// circumference when testing for obstacles.
const ProbeSamples = 16

var probeAngles = func() [ProbeSamples]float64 {
	var a [ProbeSamples]float64
	for i := range a {
		a[i] = 2 * math.Pi * float64(i) / ProbeSamples
	}
	return a
}()

// coincidentNormal separates two agents whose centres are identical.
var coincidentNormal = core.V(1, 0)

// Engine advances snapshots on a fixed canvas and obstacle field. It holds
// no mutable state and is safe to share.
type Engine struct {
	field  *field.Field
	width  float64
	height float64
}

// NewEngine returns an engine for a width×height canvas. A nil field means
// an open course bounded only by the canvas walls.
func NewEngine(f *field.Field, width, height float64) *Engine {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		violation("canvas %vx%v must be positive", width, height)
	}
	return &Engine{field: f, width: width, height: height}
}

// Field returns the obstacle field the engine reads.
func (e *Engine) Field() *field.Field {
	return e.field
}

// Width returns the canvas width.
func (e *Engine) Width() float64 {
	return e.width
}

// Height returns the canvas height.
func (e *Engine) Height() float64 {
	return e.height
}

// Stats counts the events of one or more steps.
type Stats struct {
	ObstacleBounces int
	WallBounces     int
	Collisions      int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.ObstacleBounces += o.ObstacleBounces
	s.WallBounces += o.WallBounces
	s.Collisions += o.Collisions
}

// Step returns the snapshot one step after s. s is not modified.
func (e *Engine) Step(s Snapshot) Snapshot {
	next, _ := e.StepWithStats(s)
	return next
}

// StepWithStats is Step plus a count of the bounces and collisions that
// happened during the step.
//
// Every agent first moves and bounces off obstacles and walls using only
// the previous snapshot. Overlapping pairs are then resolved in ascending
// (i, j) order, each pair seeing the result of the pairs before it.
// Finally each velocity is rescaled to the agent's speed.
func (e *Engine) StepWithStats(s Snapshot) (Snapshot, Stats) {
	var st Stats
	next := make(Snapshot, len(s))
	for i, a := range s {
		next[i] = e.move(a, &st)
	}
	collide(next, &st)
	for i := range next {
		next[i].Vel = renormalize(next[i].Vel, next[i].Speed)
	}
	return next, st
}

// move applies one step of motion with at most one obstacle bounce,
// followed by wall bounces on each axis.
func (e *Engine) move(a Agent, st *Stats) Agent {
	v := a.Vel
	t := a.Pos.Add(v)

	for _, theta := range probeAngles {
		p := t.Add(core.FromAngle(theta, a.Radius))
		if !e.field.IsObstacle(p.X, p.Y) {
			continue
		}
		n := e.field.NormalAt(p.X, p.Y)
		if n.IsZero() {
			n = core.FromAngle(theta, 1)
		}
		v = v.Reflect(n)
		t = a.Pos.Add(v)
		st.ObstacleBounces++
		break
	}

	if t.X-a.Radius < 0 || t.X+a.Radius > e.width {
		v.X = -v.X
		t.X = a.Pos.X + v.X
		st.WallBounces++
	}
	if t.Y-a.Radius < 0 || t.Y+a.Radius > e.height {
		v.Y = -v.Y
		t.Y = a.Pos.Y + v.Y
		st.WallBounces++
	}

	a.Pos = t
	a.Vel = v
	return a
}

// collide resolves overlapping pairs in place.
func collide(s Snapshot, st *Stats) {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			a, b := &s[i], &s[j]
			d := a.Pos.Sub(b.Pos)
			dist := d.Len()
			sum := a.Radius + b.Radius
			if dist >= sum {
				continue
			}

			n := coincidentNormal
			if dist > 0 {
				n = d.Scale(1 / dist)
			}
			a.Vel = a.Vel.Reflect(n)
			b.Vel = b.Vel.Reflect(n)

			push := n.Scale((sum - dist) / 2)
			a.Pos = a.Pos.Add(push)
			b.Pos = b.Pos.Sub(push)
			st.Collisions++
		}
	}
}

func renormalize(v core.Vec2, speed float64) core.Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l).Scale(speed)
}

// ProbeHit is one circumference sample around an agent.
type ProbeHit struct {
	Angle    float64
	Point    core.Vec2
	Hit      bool
	Normal   core.Vec2 // set only for hits
	Fallback bool      // Normal is the radial direction, the field gave none
}

// Probe samples the circumference of a at its current position, the same
// way a step does for the tentative position.
func (e *Engine) Probe(a Agent) []ProbeHit {
	hits := make([]ProbeHit, ProbeSamples)
	for i, theta := range probeAngles {
		p := a.Pos.Add(core.FromAngle(theta, a.Radius))
		h := ProbeHit{Angle: theta, Point: p}
		if e.field.IsObstacle(p.X, p.Y) {
			h.Hit = true
			h.Normal = e.field.NormalAt(p.X, p.Y)
			if h.Normal.IsZero() {
				h.Normal = core.FromAngle(theta, 1)
				h.Fallback = true
			}
		}
		hits[i] = h
	}
	return hits
}
