// Package courses registers the built-in race courses. Import it for its
// side effects:
//
//	import _ "github.com/vovakirdan/tui-derby/internal/courses"
package courses

import (
	"image"
	"image/color"

	"github.com/vovakirdan/tui-derby/internal/field"
	"github.com/vovakirdan/tui-derby/internal/registry"
)

var (
	solid = color.NRGBA{R: 90, G: 70, B: 50, A: 255}
	ground = color.NRGBA{}
)

func init() {
	registry.Register("open", func() registry.Course { return Open{} })
	registry.Register("oval", func() registry.Course { return Oval{} })
	registry.Register("pillars", func() registry.Course { return Pillars{} })
	registry.Register("meadow", func() registry.Course { return Meadow{} })
}

// Build renders course id at w×h and rasterises it into an obstacle field.
func Build(id string, w, h int, seed int64) (*field.Field, error) {
	c, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	return field.FromImage(c.Render(w, h, seed), w, h), nil
}

// paint fills a w×h image, marking pixels for which blocked returns true.
func paint(w, h int, blocked func(x, y float64) bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := ground
			if blocked(float64(x)+0.5, float64(y)+0.5) {
				c = solid
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Open has no obstacles; only the canvas walls.
type Open struct{}

func (Open) ID() string    { return "open" }
func (Open) Title() string { return "Open Paddock" }

func (Open) Render(w, h int, _ int64) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Oval is an elliptical track around a solid infield.
type Oval struct{}

func (Oval) ID() string    { return "oval" }
func (Oval) Title() string { return "Oval Track" }

func (Oval) Render(w, h int, _ int64) image.Image {
	cx, cy := float64(w)/2, float64(h)/2
	ox, oy := 0.47*float64(w), 0.46*float64(h)
	ix, iy := 0.27*float64(w), 0.21*float64(h)
	return paint(w, h, func(x, y float64) bool {
		dx, dy := x-cx, y-cy
		outer := (dx*dx)/(ox*ox) + (dy*dy)/(oy*oy)
		inner := (dx*dx)/(ix*ix) + (dy*dy)/(iy*iy)
		return outer > 1 || inner < 1
	})
}

// Pillars scatters round posts over an open field, staggered by row.
type Pillars struct{}

func (Pillars) ID() string    { return "pillars" }
func (Pillars) Title() string { return "Pillar Grove" }

func (Pillars) Render(w, h int, _ int64) image.Image {
	const cols, rows = 5, 4
	sx, sy := float64(w)/cols, float64(h)/rows
	r := 0.14 * min(sx, sy)
	return paint(w, h, func(x, y float64) bool {
		row := int(y / sy)
		offset := 0.0
		if row%2 == 1 {
			offset = sx / 2
		}
		px := (float64(int((x-offset)/sx))+0.5)*sx + offset
		py := (float64(row) + 0.5) * sy
		dx, dy := x-px, y-py
		return dx*dx+dy*dy < r*r
	})
}
