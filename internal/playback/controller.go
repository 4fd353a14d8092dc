package playback

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-derby/internal/race"
)

// State is the playback state of a Controller.
type State string

const (
	StateStopped State = "stopped"
	StateCaching State = "caching"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
)

// FrameFunc is called whenever a frame is ready to render.
type FrameFunc func(frame int, s race.Snapshot)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithFrameCount sets how many frames each play caches.
func WithFrameCount(n int) Option {
	return func(c *Controller) {
		c.frameCount = n
	}
}

// WithCacheBudget caps the memory of each cache, in bytes.
func WithCacheBudget(bytes int64) Option {
	return func(c *Controller) {
		c.budget = bytes
	}
}

// Controller plays a Simulation either from a precomputed FrameCache
// (play/pause/stop) or live, one step per Advance, while stopped.
// It is driven by the host: nothing happens between calls.
//
// The roster is locked from Play until Stop.
type Controller struct {
	sim        *race.Simulation
	frameCount int
	budget     int64
	logger     *log.Logger

	state     State
	live      bool
	cache     *FrameCache
	index     int
	current   race.Snapshot
	listeners []FrameFunc
}

// NewController returns a stopped controller over sim.
func NewController(sim *race.Simulation, opts ...Option) *Controller {
	c := &Controller{
		sim:        sim,
		frameCount: DefaultFrames,
		budget:     DefaultBudget,
		logger:     log.New(io.Discard),
		state:      StateStopped,
	}
	for _, opt := range opts {
		opt(c)
	}
	sim.Reset()
	c.current = sim.State()
	return c
}

// Simulation returns the simulation being played.
func (c *Controller) Simulation() *race.Simulation {
	return c.sim
}

// State returns the current playback state.
func (c *Controller) State() State {
	return c.state
}

// Live reports whether live stepping is on.
func (c *Controller) Live() bool {
	return c.live
}

// SetLive switches live stepping. It only takes effect while stopped.
func (c *Controller) SetLive(on bool) {
	if c.live != on {
		c.logger.Debug("live mode", "on", on)
	}
	c.live = on
}

// Frame returns the index of the next cached frame to emit.
func (c *Controller) Frame() int {
	return c.index
}

// FrameCount returns the number of frames each play caches.
func (c *Controller) FrameCount() int {
	return c.frameCount
}

// Cache returns the current cache, or nil when none is held.
func (c *Controller) Cache() *FrameCache {
	return c.cache
}

// Current returns a copy of the last emitted snapshot.
func (c *Controller) Current() race.Snapshot {
	return c.current.Clone()
}

// OnFrame registers fn to be called for every emitted frame.
func (c *Controller) OnFrame(fn FrameFunc) {
	c.listeners = append(c.listeners, fn)
}

// Play starts or resumes playback. From stopped, or from paused after
// the cache ran out, it resets the runners and builds a new cache before
// playing from frame 0. From paused with a cache it resumes in place.
//
// If the cache does not fit its budget the controller returns to stopped
// with live mode switched on and ErrResourceExhausted is returned. A
// cancelled ctx also returns to stopped.
func (c *Controller) Play(ctx context.Context) error {
	switch c.state {
	case StatePlaying, StateCaching:
		return nil
	case StatePaused:
		if c.cache != nil {
			c.transition(StatePlaying)
			return nil
		}
	}

	c.sim.Reset()
	c.sim.Roster().Lock()
	c.cache = nil
	c.index = 0
	c.transition(StateCaching)

	cache, err := BuildCache(ctx, c.sim.Engine(), c.sim.State(), c.frameCount, WithBudget(c.budget))
	if err != nil {
		c.sim.Roster().Unlock()
		c.transition(StateStopped)
		if errors.Is(err, ErrResourceExhausted) {
			c.logger.Warn("cache too large, falling back to live mode", "frames", c.frameCount, "runners", c.sim.Roster().Len(), "err", err)
			c.SetLive(true)
		}
		return err
	}

	c.cache = cache
	c.logger.Debug("cache built", "frames", cache.Len(), "runners", c.sim.Roster().Len(), "hash", cache.Hash())
	c.transition(StatePlaying)
	return nil
}

// Pause freezes playback at the current frame, keeping the cache.
func (c *Controller) Pause() {
	if c.state == StatePlaying {
		c.transition(StatePaused)
	}
}

// Stop discards the cache, puts every runner back at its start, rewinds
// to frame 0 and emits the reset state once.
func (c *Controller) Stop() {
	c.cache = nil
	c.index = 0
	c.sim.Reset()
	c.sim.Roster().Unlock()
	if c.state != StateStopped {
		c.transition(StateStopped)
	}
	c.current = c.sim.State()
	c.emit(0, c.current)
}

// Advance is called once per host tick. While playing it emits the next
// cached frame; when the last frame has been emitted the controller
// pauses and releases the cache. While stopped with live mode on it
// steps the simulation once. ok is false when no frame was produced.
func (c *Controller) Advance() (s race.Snapshot, ok bool) {
	switch {
	case c.state == StatePlaying:
		frame := c.index
		s = c.cache.Frame(frame)
		c.index++
		c.current = s
		c.emit(frame, s)
		if c.index >= c.cache.Len() {
			c.cache = nil
			c.transition(StatePaused)
			c.logger.Debug("cache exhausted", "frame", c.index)
		}
		return s.Clone(), true
	case c.state == StateStopped && c.live:
		s = c.sim.Step()
		c.current = s
		c.emit(c.sim.Steps(), s)
		return s.Clone(), true
	}
	return nil, false
}

func (c *Controller) transition(to State) {
	c.logger.Debug("playback", "from", c.state, "to", to, "frame", c.index)
	c.state = to
}

func (c *Controller) emit(frame int, s race.Snapshot) {
	for _, fn := range c.listeners {
		fn(frame, s.Clone())
	}
}
