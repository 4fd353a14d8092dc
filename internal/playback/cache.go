// Package playback precomputes race frames and drives them through a
// stopped/caching/playing/paused state machine for a host render loop.
package playback

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"unsafe"

	"github.com/vovakirdan/tui-derby/internal/race"
)

// Defaults for a cached run: 20 seconds at 60 frames per second.
const (
	DefaultFrames = 1200
	DefaultBudget = 256 << 20 // bytes
)

// ErrResourceExhausted is returned when a cache would not fit the memory budget.
var ErrResourceExhausted = errors.New("playback: frame cache exceeds memory budget")

// cancelCheckEvery is how many frames are built between context checks.
const cancelCheckEvery = 64

const (
	agentBytes    = int64(unsafe.Sizeof(race.Agent{}))
	snapshotBytes = int64(unsafe.Sizeof(race.Snapshot{}))
	statsBytes    = int64(unsafe.Sizeof(race.Stats{}))
)

type cacheOptions struct {
	budget int64
}

// CacheOption configures BuildCache.
type CacheOption func(*cacheOptions)

// WithBudget caps the memory a cache may use, in bytes.
func WithBudget(bytes int64) CacheOption {
	return func(o *cacheOptions) {
		o.budget = bytes
	}
}

// FrameCache is an immutable sequence of snapshots where frame 0 is the
// initial state and every later frame is one engine step after the one
// before it.
type FrameCache struct {
	frames []race.Snapshot
	stats  []race.Stats
}

// EstimateBytes returns the memory a cache of frameCount frames of n
// agents needs.
func EstimateBytes(frameCount, n int) int64 {
	per := int64(n)*agentBytes + snapshotBytes + statsBytes
	if per > 0 && int64(frameCount) > math.MaxInt64/per {
		return math.MaxInt64
	}
	return int64(frameCount) * per
}

// BuildCache steps initial frameCount-1 times with eng and stores every
// snapshot. The result depends only on its inputs. It returns
// ErrResourceExhausted when the cache would exceed the budget, and the
// context's error when ctx is done before the build finishes.
func BuildCache(ctx context.Context, eng *race.Engine, initial race.Snapshot, frameCount int, opts ...CacheOption) (*FrameCache, error) {
	o := cacheOptions{budget: DefaultBudget}
	for _, opt := range opts {
		opt(&o)
	}

	if frameCount < 1 {
		return nil, fmt.Errorf("%w: frame count %d must be at least 1", race.ErrContractViolation, frameCount)
	}
	if need := EstimateBytes(frameCount, len(initial)); need > o.budget {
		return nil, fmt.Errorf("%w: %d frames of %d runners need %d bytes, budget is %d",
			ErrResourceExhausted, frameCount, len(initial), need, o.budget)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := &FrameCache{
		frames: make([]race.Snapshot, frameCount),
		stats:  make([]race.Stats, frameCount),
	}
	c.frames[0] = initial.Clone()
	for i := 1; i < frameCount; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		c.frames[i], c.stats[i] = eng.StepWithStats(c.frames[i-1])
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// Len returns the number of frames.
func (c *FrameCache) Len() int {
	return len(c.frames)
}

// Frame returns a copy of frame i. It panics with race.ErrContractViolation
// when i is out of range.
func (c *FrameCache) Frame(i int) race.Snapshot {
	c.mustIndex(i)
	return c.frames[i].Clone()
}

// Stats returns the events of the step that produced frame i. Frame 0
// has none.
func (c *FrameCache) Stats(i int) race.Stats {
	c.mustIndex(i)
	return c.stats[i]
}

// Totals sums the stats of every frame.
func (c *FrameCache) Totals() race.Stats {
	var t race.Stats
	for _, s := range c.stats {
		t.Add(s)
	}
	return t
}

// Final returns a copy of the last frame.
func (c *FrameCache) Final() race.Snapshot {
	return c.Frame(len(c.frames) - 1)
}

// Hash returns an FNV-1a hash over the exact bits of every frame.
func (c *FrameCache) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	for _, frame := range c.frames {
		for _, a := range frame {
			put(a.Pos.X)
			put(a.Pos.Y)
			put(a.Vel.X)
			put(a.Vel.Y)
			put(a.Radius)
			put(a.Speed)
		}
	}
	return h.Sum64()
}

func (c *FrameCache) mustIndex(i int) {
	if i < 0 || i >= len(c.frames) {
		panic(fmt.Errorf("%w: frame %d out of range [0,%d)", race.ErrContractViolation, i, len(c.frames)))
	}
}
