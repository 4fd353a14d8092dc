// Package race implements the deterministic runner simulation: agent
// state, the three-phase step, the roster and the Simulation that ties
// them together. It has no terminal or storage dependencies.
package race

import (
	"math"
	"strconv"

	"github.com/vovakirdan/tui-derby/internal/core"
)

// Runner defaults, matching the editor's "add runner" values.
const (
	DefaultSpeed  = 3.0
	DefaultRadius = 16.0
	DefaultTint   = "#ffffff00"

	MinSpeed  = 1.0
	MaxSpeed  = 10.0
	MinRadius = 1.0
)

// Agent is the physical state of one runner. Vel always has length Speed
// after a step unless the runner has stalled at zero velocity.
type Agent struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Speed  float64
}

// NewAgent places an agent at start heading along angle (radians).
// It panics with ErrContractViolation on invalid input.
func NewAgent(start core.Vec2, angle, radius, speed float64) Agent {
	a := Agent{
		Pos:    start,
		Vel:    core.FromAngle(angle, speed),
		Radius: radius,
		Speed:  speed,
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		violation("start angle %v is not finite", angle)
	}
	a.mustValidate()
	return a
}

func (a Agent) mustValidate() {
	switch {
	case !a.Pos.IsFinite():
		violation("position %v is not finite", a.Pos)
	case !a.Vel.IsFinite():
		violation("velocity %v is not finite", a.Vel)
	case !(a.Radius > 0) || math.IsInf(a.Radius, 0):
		violation("radius %v must be positive", a.Radius)
	case !(a.Speed > 0) || math.IsInf(a.Speed, 0):
		violation("speed %v must be positive", a.Speed)
	}
}

// Heading returns the direction of travel in radians.
func (a Agent) Heading() float64 {
	return a.Vel.Angle()
}

// Stalled reports whether the agent has lost all velocity.
func (a Agent) Stalled() bool {
	return a.Vel.IsZero()
}

// Runner is the editor-side configuration of a runner. Agents are derived
// from it on every reset.
type Runner struct {
	ID     int
	Name   string
	Tint   string
	Start  core.Vec2
	Angle  float64 // start heading, radians
	Radius float64
	Speed  float64
}

// NewRunner returns a runner with editor defaults starting at start.
func NewRunner(name string, start core.Vec2, angle float64) Runner {
	return Runner{
		Name:   name,
		Tint:   DefaultTint,
		Start:  start,
		Angle:  angle,
		Radius: DefaultRadius,
		Speed:  DefaultSpeed,
	}
}

// Agent returns the runner's initial physical state.
func (r Runner) Agent() Agent {
	return NewAgent(r.Start, r.Angle, r.Radius, r.Speed)
}

// Label returns the runner's name, or "#ID" when unnamed.
func (r Runner) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return "#" + strconv.Itoa(r.ID)
}
