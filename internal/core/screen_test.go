package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'o', ColorRed)
	if got := s.GetCell(5, 5); got.Rune != 'o' || got.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'o'", got)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawTextColored(0, 1, "abcd", ColorGreen)
	s.Clear()

	if got := s.String(); got != "    \n    \n    " {
		t.Errorf("after Clear got %q", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(3, 0, "hello")

	if got := s.Row(0); got != "   hel" {
		t.Errorf("Row(0) = %q, expected clipped text", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	want := strings.Join([]string{"┌──┐", "│  │", "└──┘"}, "\n")
	if got := s.String(); got != want {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", got, want)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box corner should carry the box colour")
	}
}

func TestProjection(t *testing.T) {
	p := Projection{CanvasW: 640, CanvasH: 480, Area: NewRect(1, 1, 64, 24)}

	tests := []struct {
		name   string
		pt     Vec2
		cx, cy int
	}{
		{"origin", V(0, 0), 1, 1},
		{"centre", V(320, 240), 33, 13},
		{"far corner clamps", V(640, 480), 64, 24},
		{"negative clamps", V(-10, -10), 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := p.ToCell(tc.pt)
			if x != tc.cx || y != tc.cy {
				t.Errorf("ToCell(%v) = (%d, %d), expected (%d, %d)", tc.pt, x, y, tc.cx, tc.cy)
			}
		})
	}

	back := p.ToCanvas(33, 13)
	if x, y := p.ToCell(back); x != 33 || y != 13 {
		t.Errorf("ToCanvas/ToCell round trip = (%d, %d)", x, y)
	}
}
