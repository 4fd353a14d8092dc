package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-derby/internal/core"
)

func TestEmbeddedDefaultIsValid(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded default is invalid: %v", err)
	}
	if len(cfg.Roster) == 0 {
		t.Error("embedded default should ship a roster")
	}
	if cfg.Canvas != DefaultRaceConfig().Canvas || cfg.Playback != DefaultRaceConfig().Playback {
		t.Error("embedded default and DefaultRaceConfig disagree")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "race.yaml")
	data := `
canvas:
  width: 320
playback:
  frames: 90
roster:
  - name: Solo
    x: 40
    y: 50
    angle: 90
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Canvas.Width != 320 || cfg.Canvas.Height != 480 {
		t.Errorf("canvas = %+v, expected 320x480 (height kept from defaults)", cfg.Canvas)
	}
	if cfg.Playback.Frames != 90 || cfg.Playback.TickRate != 60 {
		t.Errorf("playback = %+v", cfg.Playback)
	}

	runners := cfg.Runners()
	if len(runners) != 1 {
		t.Fatalf("got %d runners, expected 1", len(runners))
	}
	rn := runners[0]
	if rn.Start != core.V(40, 50) || rn.Radius != 16 || rn.Speed != 3 {
		t.Errorf("runner = %+v, expected defaults at (40,50)", rn)
	}
	if math.Abs(rn.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("angle = %v, expected pi/2", rn.Angle)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("canvas: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load of malformed YAML should fail")
	}
}

func TestRunnerDefaultsToCentre(t *testing.T) {
	cfg := DefaultRaceConfig()
	rn := cfg.Runner(RunnerConfig{Name: "mid", Radius: 9, Speed: 7, Tint: "#00ff00"})

	if rn.Start != core.V(320, 240) {
		t.Errorf("start = %v, expected canvas centre", rn.Start)
	}
	if rn.Radius != 9 || rn.Speed != 7 || rn.Tint != "#00ff00" {
		t.Errorf("runner overrides lost: %+v", rn)
	}
}

func TestValidate(t *testing.T) {
	x := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		mutate  func(*RaceConfig)
		wantErr string
	}{
		{"defaults", func(*RaceConfig) {}, ""},
		{"zero canvas", func(c *RaceConfig) { c.Canvas.Width = 0 }, "canvas"},
		{"zero frames", func(c *RaceConfig) { c.Playback.Frames = 0 }, "playback.frames"},
		{"zero tick rate", func(c *RaceConfig) { c.Playback.TickRate = 0 }, "tick_rate"},
		{"threshold too high", func(c *RaceConfig) { c.Physics.ObstacleThreshold = 300 }, "obstacle_threshold"},
		{"speed too high", func(c *RaceConfig) {
			c.Roster = []RunnerConfig{{Name: "fast", Speed: 12}}
		}, "roster[0]"},
		{"start off canvas", func(c *RaceConfig) {
			c.Roster = []RunnerConfig{{Name: "lost", X: x(-5)}}
		}, "outside the canvas"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRaceConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestRosterRoundTrip(t *testing.T) {
	x, y := 12.5, 80.0
	roster := []RunnerConfig{
		{Name: "A", Tint: "#ff0000", X: &x, Y: &y, AngleDeg: 45},
		{Name: "B", Speed: 6},
	}

	data, err := MarshalRoster(roster)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if diff := cmp.Diff(roster, got); diff != "" {
		t.Errorf("roster mismatch (-want +got):\n%s", diff)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in     string
		frames int
	}{
		{"sprint", 600},
		{"Standard", 1200},
		{" marathon ", 3600},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			p, err := ParsePreset(tc.in)
			if err != nil {
				t.Fatalf("ParsePreset(%q) failed: %v", tc.in, err)
			}
			cfg := DefaultRaceConfig()
			ApplyPreset(&cfg, p)
			if cfg.Playback.Frames != tc.frames {
				t.Errorf("frames = %d, expected %d", cfg.Playback.Frames, tc.frames)
			}
		})
	}

	if _, err := ParsePreset("ultra"); err == nil {
		t.Error("ParsePreset(ultra) should fail")
	}

	cfg := DefaultRaceConfig()
	ApplyPreset(&cfg, PresetMarathon)
	if cfg.CacheBudget() < 512<<20 {
		t.Errorf("marathon budget = %d, expected at least 512 MiB", cfg.CacheBudget())
	}
}
