package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the race configuration.
// Search order: customPath -> ~/.derby/configs/race.yaml -> ./configs/race.yaml -> embedded default.
// Values a file leaves out keep their defaults.
func Load(customPath string) (RaceConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RaceConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RaceConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("race.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "race.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultRaceYAML)
	if err != nil {
		return DefaultRaceConfig(), nil
	}
	return cfg, nil
}

// Parse decodes a race file on top of DefaultRaceConfig.
func Parse(data []byte) (RaceConfig, error) {
	cfg := DefaultRaceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RaceConfig{}, err
	}
	return cfg, nil
}

// LoadRoster reads a roster file: a YAML list of runners.
func LoadRoster(path string) ([]RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read roster %s: %w", path, err)
	}
	var roster []RunnerConfig
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("config: cannot parse roster %s: %w", path, err)
	}
	return roster, nil
}

// MarshalRoster encodes a roster in the LoadRoster format.
func MarshalRoster(roster []RunnerConfig) ([]byte, error) {
	data, err := yaml.Marshal(roster)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode roster: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".derby", "configs", filename)
}
