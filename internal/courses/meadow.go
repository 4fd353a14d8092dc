package courses

import (
	"image"
	"math"

	"github.com/aquilax/go-perlin"
)

// Perlin parameters for the meadow hedges.
const (
	meadowAlpha  = 2.0
	meadowBeta   = 2.0
	meadowOctave = 3
	meadowScale  = 1.0 / 90 // canvas units per noise unit
	meadowLevel  = 0.18     // noise above this is hedge
)

// Meadow is a procedural course of Perlin-noise hedges. The centre is
// kept clear so runners starting there are not boxed in.
type Meadow struct{}

func (Meadow) ID() string    { return "meadow" }
func (Meadow) Title() string { return "Meadow (procedural)" }

func (Meadow) Render(w, h int, seed int64) image.Image {
	p := perlin.NewPerlin(meadowAlpha, meadowBeta, meadowOctave, seed)
	cx, cy := float64(w)/2, float64(h)/2
	clearing := 0.2 * math.Min(float64(w), float64(h))
	return paint(w, h, func(x, y float64) bool {
		if math.Hypot(x-cx, y-cy) < clearing {
			return false
		}
		return p.Noise2D(x*meadowScale, y*meadowScale) > meadowLevel
	})
}
