package field

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // course formats
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FromImage rasterises img onto a w×h canvas. An image of the canvas size
// is copied pixel for pixel; any other size is stretched to fill it.
func FromImage(img image.Image, w, h int) *Field {
	alpha := make([]uint8, w*h)
	b := img.Bounds()

	var src image.Image = img
	if b.Dx() != w || b.Dy() != h {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		src = dst
		b = dst.Bounds()
	}

	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				alpha[y*w+x] = n.Pix[n.PixOffset(b.Min.X+x, b.Min.Y+y)+3]
			}
		}
		return New(w, h, alpha)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			alpha[y*w+x] = uint8(a >> 8)
		}
	}
	return New(w, h, alpha)
}

// Decode reads a course image in any registered format (PNG, GIF, JPEG,
// BMP, TIFF, WebP) and rasterises it to w×h.
func Decode(r io.Reader, w, h int) (*Field, error) {
	return decode(r, "reader", w, h)
}

// Load decodes the course image at path.
func Load(path string, w, h int) (*Field, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	defer fh.Close()
	return decode(fh, path, w, h)
}

func decode(r io.Reader, source string, w, h int) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, &DecodeError{Source: source, Err: fmt.Errorf("invalid canvas %dx%d", w, h)}
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &DecodeError{Source: source, Err: errors.New("image has no pixels")}
	}
	return FromImage(img, w, h), nil
}
