package config

import (
	"fmt"
	"strings"
)

// Preset is a named race length.
type Preset string

const (
	PresetSprint   Preset = "sprint"
	PresetStandard Preset = "standard"
	PresetMarathon Preset = "marathon"
)

// Presets lists the known presets, shortest first.
func Presets() []Preset {
	return []Preset{PresetSprint, PresetStandard, PresetMarathon}
}

// FramesForPreset returns the cached frame count of a preset, or 0.
func FramesForPreset(p Preset) int {
	switch p {
	case PresetSprint:
		return 600
	case PresetStandard:
		return 1200
	case PresetMarathon:
		return 3600
	default:
		return 0
	}
}

// ParsePreset accepts a preset name in any case.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if FramesForPreset(p) == 0 {
		return "", fmt.Errorf("config: unknown preset %q (want sprint, standard or marathon)", s)
	}
	return p, nil
}

// ApplyPreset sets the race length from a preset. The marathon preset
// also raises the cache budget so a full roster still fits.
func ApplyPreset(cfg *RaceConfig, p Preset) {
	if n := FramesForPreset(p); n > 0 {
		cfg.Playback.Frames = n
	}
	if p == PresetMarathon && cfg.Playback.CacheBudgetMB < 512 {
		cfg.Playback.CacheBudgetMB = 512
	}
}
