// Package config provides YAML-based race configuration: canvas size,
// playback length, physics threshold, runner defaults and the roster.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-derby/internal/core"
	"github.com/vovakirdan/tui-derby/internal/race"
)

// RaceConfig contains all configuration for a race.
type RaceConfig struct {
	Canvas         CanvasConfig   `yaml:"canvas"`
	Playback       PlaybackConfig `yaml:"playback"`
	Physics        PhysicsConfig  `yaml:"physics"`
	RunnerDefaults RunnerDefaults `yaml:"runner"`
	Course         string         `yaml:"course"` // built-in course id or image path
	Roster         []RunnerConfig `yaml:"roster"`
}

// CanvasConfig is the simulation canvas in canvas units.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlaybackConfig controls frame caching and the render rate.
type PlaybackConfig struct {
	Frames        int `yaml:"frames"`
	TickRate      int `yaml:"tick_rate"`
	CacheBudgetMB int `yaml:"cache_budget_mb"`
}

// PhysicsConfig holds obstacle field parameters.
type PhysicsConfig struct {
	ObstacleThreshold int `yaml:"obstacle_threshold"` // alpha 0..255
}

// RunnerDefaults apply to roster entries that leave a value out.
type RunnerDefaults struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
}

// RunnerConfig is one roster entry. A missing position starts the runner
// at the canvas centre.
type RunnerConfig struct {
	Name     string   `yaml:"name"`
	Tint     string   `yaml:"tint,omitempty"`
	X        *float64 `yaml:"x,omitempty"`
	Y        *float64 `yaml:"y,omitempty"`
	AngleDeg float64  `yaml:"angle"`
	Radius   float64  `yaml:"radius,omitempty"`
	Speed    float64  `yaml:"speed,omitempty"`
}

// CacheBudget returns the frame cache budget in bytes.
func (c RaceConfig) CacheBudget() int64 {
	return int64(c.Playback.CacheBudgetMB) << 20
}

// Runner resolves a roster entry against the defaults and canvas.
func (c RaceConfig) Runner(rc RunnerConfig) race.Runner {
	start := core.V(float64(c.Canvas.Width)/2, float64(c.Canvas.Height)/2)
	if rc.X != nil {
		start.X = *rc.X
	}
	if rc.Y != nil {
		start.Y = *rc.Y
	}

	rn := race.NewRunner(rc.Name, start, rc.AngleDeg*math.Pi/180)
	rn.Radius = c.RunnerDefaults.Radius
	rn.Speed = c.RunnerDefaults.Speed
	if rc.Radius != 0 {
		rn.Radius = rc.Radius
	}
	if rc.Speed != 0 {
		rn.Speed = rc.Speed
	}
	if rc.Tint != "" {
		rn.Tint = rc.Tint
	}
	return rn
}

// Runners resolves the whole roster in order.
func (c RaceConfig) Runners() []race.Runner {
	out := make([]race.Runner, len(c.Roster))
	for i, rc := range c.Roster {
		out[i] = c.Runner(rc)
	}
	return out
}

// Validate checks the configuration and every resolved runner.
func (c RaceConfig) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Playback.Frames < 1 {
		errs = append(errs, fmt.Errorf("playback.frames %d must be at least 1", c.Playback.Frames))
	}
	if c.Playback.TickRate < 1 {
		errs = append(errs, fmt.Errorf("playback.tick_rate %d must be at least 1", c.Playback.TickRate))
	}
	if c.Playback.CacheBudgetMB < 1 {
		errs = append(errs, fmt.Errorf("playback.cache_budget_mb %d must be at least 1", c.Playback.CacheBudgetMB))
	}
	if c.Physics.ObstacleThreshold < 0 || c.Physics.ObstacleThreshold > 255 {
		errs = append(errs, fmt.Errorf("physics.obstacle_threshold %d outside [0, 255]", c.Physics.ObstacleThreshold))
	}
	for i, rn := range c.Runners() {
		if err := race.ValidateRunner(rn); err != nil {
			errs = append(errs, fmt.Errorf("roster[%d]: %w", i, err))
			continue
		}
		if rn.Start.X < 0 || rn.Start.Y < 0 || rn.Start.X > float64(c.Canvas.Width) || rn.Start.Y > float64(c.Canvas.Height) {
			errs = append(errs, fmt.Errorf("roster[%d]: start %v outside the canvas", i, rn.Start))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid race config: %w", err)
	}
	return nil
}
