package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color is a terminal foreground colour: either an ANSI 256 code ("245")
// or a hex RGB string ("#ff8800"). The empty string is the terminal default.
type Color string

// Predefined colors for course and HUD elements.
const (
	ColorDefault Color = ""
	ColorRed     Color = "1"
	ColorGreen   Color = "2"
	ColorYellow  Color = "3"
	ColorBlue    Color = "4"
	ColorMagenta Color = "5"
	ColorCyan    Color = "6"
	ColorWhite   Color = "7"
	ColorOrange  Color = "208"
	ColorGray    Color = "245"
	ColorDim     Color = "238"
)

// RunnerPalette is used for runners whose tint is transparent.
var RunnerPalette = []Color{
	ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorMagenta, ColorCyan, ColorOrange, ColorWhite,
}

// PaletteColor returns a stable palette colour for the i-th runner.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return RunnerPalette[i%len(RunnerPalette)]
}

// Tint is a parsed runner tint.
type Tint struct {
	R, G, B uint8
	A       float64 // 0 = fully transparent, 1 = opaque
}

var rgbaPattern = regexp.MustCompile(`^rgba\((\d+),\s*(\d+),\s*(\d+),\s*([0-9.]+)\)$`)

// ParseTint accepts "#rrggbb", "#rrggbbaa" and "rgba(r,g,b,a)".
func ParseTint(s string) (Tint, error) {
	s = strings.TrimSpace(s)
	if m := rgbaPattern.FindStringSubmatch(s); m != nil {
		var t Tint
		for i, dst := range []*uint8{&t.R, &t.G, &t.B} {
			n, err := strconv.ParseUint(m[i+1], 10, 8)
			if err != nil {
				return Tint{}, fmt.Errorf("tint %q: %w", s, err)
			}
			*dst = uint8(n)
		}
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return Tint{}, fmt.Errorf("tint %q: %w", s, err)
		}
		t.A = ClampF(a, 0, 1)
		return t, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Tint{}, fmt.Errorf("tint %q: expected #rrggbb, #rrggbbaa or rgba()", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Tint{}, fmt.Errorf("tint %q: %w", s, err)
	}
	t := Tint{A: 1}
	if len(hex) == 8 {
		t.A = float64(v&0xff) / 255
		v >>= 8
	}
	t.R, t.G, t.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return t, nil
}

// Hex returns the tint as "#rrggbb" (alpha dropped).
func (t Tint) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", t.R, t.G, t.B)
}

// TintColor resolves a runner tint to a terminal colour. Transparent or
// unparsable tints fall back to the palette entry for index i.
func TintColor(tint string, i int) Color {
	t, err := ParseTint(tint)
	if err != nil || t.A == 0 {
		return PaletteColor(i)
	}
	return Color(t.Hex())
}
