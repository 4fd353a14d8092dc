// Package field holds the obstacle map a race is run on: an immutable
// grid of alpha values rasterised from a course image. A cell whose alpha
// exceeds the threshold is impassable; everything outside the grid is too.
package field

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-derby/internal/core"
)

// DefaultThreshold is the alpha (out of 255) above which a cell is an obstacle.
const DefaultThreshold uint8 = 10

// minGradient is the gradient magnitude below which NormalAt gives up.
const minGradient = 1e-6

// Field is an immutable W×H alpha grid. A nil *Field has no obstacles.
type Field struct {
	w, h      int
	alpha     []uint8
	threshold uint8
}

// New builds a field from a row-major alpha plane. The slice is copied.
// It panics if the plane does not hold exactly w*h values.
func New(w, h int, alpha []uint8) *Field {
	if w < 0 || h < 0 || len(alpha) != w*h {
		panic(fmt.Sprintf("field: alpha plane has %d values, expected %dx%d", len(alpha), w, h))
	}
	return &Field{
		w:         w,
		h:         h,
		alpha:     append([]uint8(nil), alpha...),
		threshold: DefaultThreshold,
	}
}

// Width returns the grid width in cells.
func (f *Field) Width() int {
	if f == nil {
		return 0
	}
	return f.w
}

// Height returns the grid height in cells.
func (f *Field) Height() int {
	if f == nil {
		return 0
	}
	return f.h
}

// Threshold returns the obstacle alpha threshold.
func (f *Field) Threshold() uint8 {
	if f == nil {
		return DefaultThreshold
	}
	return f.threshold
}

// WithThreshold returns a field sharing this grid with another threshold.
func (f *Field) WithThreshold(t uint8) *Field {
	if f == nil {
		return nil
	}
	c := *f
	c.threshold = t
	return &c
}

// Alpha returns the alpha of cell (ix, iy), or 0 outside the grid.
func (f *Field) Alpha(ix, iy int) uint8 {
	if f == nil || ix < 0 || iy < 0 || ix >= f.w || iy >= f.h {
		return 0
	}
	return f.alpha[iy*f.w+ix]
}

// cell floors a canvas point to grid indices. ok is false outside the
// grid, including for NaN or infinite coordinates.
func (f *Field) cell(x, y float64) (ix, iy int, ok bool) {
	if !(x >= 0 && x < float64(f.w) && y >= 0 && y < float64(f.h)) {
		return 0, 0, false
	}
	return int(math.Floor(x)), int(math.Floor(y)), true
}

// IsObstacle reports whether the cell containing (x, y) is out of bounds
// or more opaque than the threshold.
func (f *Field) IsObstacle(x, y float64) bool {
	if f == nil {
		return false
	}
	ix, iy, ok := f.cell(x, y)
	if !ok {
		return true
	}
	return f.alpha[iy*f.w+ix] > f.threshold
}

// NormalAt estimates the unit surface normal at (x, y) from the central
// difference of alpha around the containing cell. The result points from
// opaque towards transparent. It returns the zero vector when the
// gradient is too flat to give a direction.
func (f *Field) NormalAt(x, y float64) core.Vec2 {
	if f == nil || math.IsNaN(x) || math.IsNaN(y) {
		return core.Vec2{}
	}
	ix, iy := floorInt(x), floorInt(y)
	g := core.V(
		float64(f.Alpha(ix+1, iy))-float64(f.Alpha(ix-1, iy)),
		float64(f.Alpha(ix, iy+1))-float64(f.Alpha(ix, iy-1)),
	)
	mag := g.Len()
	if mag < minGradient {
		return core.Vec2{}
	}
	return g.Scale(-1 / mag)
}

// ObstacleCells counts the cells above the threshold.
func (f *Field) ObstacleCells() int {
	if f == nil {
		return 0
	}
	n := 0
	for _, a := range f.alpha {
		if a > f.threshold {
			n++
		}
	}
	return n
}

// floorInt floors v, saturating far outside the int range so Alpha sees
// an out-of-bounds index rather than a wrapped one.
func floorInt(v float64) int {
	const limit = 1 << 30
	switch {
	case v < -limit:
		return -limit
	case v > limit:
		return limit
	}
	return int(math.Floor(v))
}
