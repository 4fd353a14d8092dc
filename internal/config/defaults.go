package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-derby/internal/playback"
	"github.com/vovakirdan/tui-derby/internal/race"
)

//go:embed defaults/race.yaml
var defaultRaceYAML []byte

// DefaultRaceConfig returns the hard-coded race configuration, used when
// no file and no embedded default can be read.
func DefaultRaceConfig() RaceConfig {
	return RaceConfig{
		Canvas: CanvasConfig{
			Width:  640,
			Height: 480,
		},
		Playback: PlaybackConfig{
			Frames:        playback.DefaultFrames,
			TickRate:      60,
			CacheBudgetMB: playback.DefaultBudget >> 20,
		},
		Physics: PhysicsConfig{
			ObstacleThreshold: 10,
		},
		RunnerDefaults: RunnerDefaults{
			Radius: race.DefaultRadius,
			Speed:  race.DefaultSpeed,
		},
		Course: "oval",
	}
}

// DefaultYAML returns the embedded default race file.
func DefaultYAML() []byte {
	return defaultRaceYAML
}
