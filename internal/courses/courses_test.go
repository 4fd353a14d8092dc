package courses

import (
	"testing"

	"github.com/vovakirdan/tui-derby/internal/registry"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"open", "oval", "pillars", "meadow"} {
		if !registry.Exists(id) {
			t.Errorf("course %q is not registered", id)
		}
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		id       string
		open     [][2]float64
		obstacle [][2]float64
	}{
		{"open", [][2]float64{{1, 1}, {320, 240}, {638, 478}}, nil},
		{"oval", [][2]float64{{120, 240}, {320, 90}, {320, 390}}, [][2]float64{{320, 240}, {2, 2}}},
		{"pillars", [][2]float64{{1, 1}}, [][2]float64{{64, 60}, {192, 60}, {128, 180}}},
		{"meadow", [][2]float64{{320, 240}}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			f, err := Build(tc.id, 640, 480, 42)
			if err != nil {
				t.Fatalf("Build(%q) failed: %v", tc.id, err)
			}
			if f.Width() != 640 || f.Height() != 480 {
				t.Fatalf("field is %dx%d", f.Width(), f.Height())
			}
			for _, p := range tc.open {
				if f.IsObstacle(p[0], p[1]) {
					t.Errorf("%v should be open ground", p)
				}
			}
			for _, p := range tc.obstacle {
				if !f.IsObstacle(p[0], p[1]) {
					t.Errorf("%v should be an obstacle", p)
				}
			}
		})
	}
}

func TestMeadowSeeded(t *testing.T) {
	a, _ := Build("meadow", 400, 300, 7)
	b, _ := Build("meadow", 400, 300, 7)
	if a.ObstacleCells() != b.ObstacleCells() {
		t.Error("same seed should give the same meadow")
	}
	if a.ObstacleCells() == 0 {
		t.Error("meadow should have some hedges")
	}
}

func TestBuildUnknown(t *testing.T) {
	if _, err := Build("moon", 10, 10, 0); err == nil {
		t.Error("Build of an unknown course should fail")
	}
}
