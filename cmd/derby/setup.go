package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-derby/internal/config"
	"github.com/vovakirdan/tui-derby/internal/courses"
	"github.com/vovakirdan/tui-derby/internal/field"
	"github.com/vovakirdan/tui-derby/internal/playback"
	"github.com/vovakirdan/tui-derby/internal/race"
	"github.com/vovakirdan/tui-derby/internal/registry"
	"github.com/vovakirdan/tui-derby/internal/storage"
)

// raceFlags select the course, roster and length of a race.
type raceFlags struct {
	course string
	roster string
	stable string
	preset string
}

func (rf *raceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rf.course, "course", "", "Built-in course id or path to a course image")
	cmd.Flags().StringVar(&rf.roster, "roster", "", "Path to a roster YAML file")
	cmd.Flags().StringVar(&rf.stable, "stable", "", "Name of a saved stable to race")
	cmd.Flags().StringVar(&rf.preset, "preset", "", "Race length preset: sprint, standard, marathon")
}

// raceSetup is everything needed to run one race.
type raceSetup struct {
	cfg   config.RaceConfig
	title string
	seed  int64
	sim   *race.Simulation
}

// controller wraps the simulation in a playback controller sized by the config.
func (s raceSetup) controller(logger *log.Logger) *playback.Controller {
	return playback.NewController(s.sim,
		playback.WithLogger(logger),
		playback.WithFrameCount(s.cfg.Playback.Frames),
		playback.WithCacheBudget(s.cfg.CacheBudget()),
	)
}

// tickRate returns --fps when given, else the configured rate.
func (s raceSetup) tickRate() int {
	if flagFPS > 0 {
		return flagFPS
	}
	return s.cfg.Playback.TickRate
}

// loadRaceConfig loads the config file and applies flag overrides.
func loadRaceConfig(rf raceFlags) (config.RaceConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if rf.preset != "" {
		p, err := config.ParsePreset(rf.preset)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, p)
	}

	if rf.stable != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return cfg, err
		}
		defer store.Close()

		st, err := store.Stable(rf.stable)
		if err != nil {
			return cfg, fmt.Errorf("stable %q: %w", rf.stable, err)
		}
		cfg.Roster = st.Runners
		if st.Course != "" {
			cfg.Course = st.Course
		}
	} else if rf.roster != "" {
		roster, err := config.LoadRoster(rf.roster)
		if err != nil {
			return cfg, err
		}
		cfg.Roster = roster
	}

	if rf.course != "" {
		cfg.Course = rf.course
	}

	return cfg, cfg.Validate()
}

// loadCourse builds the obstacle field for a built-in course id or an
// image path and returns it with a display title.
func loadCourse(cfg config.RaceConfig, seed int64) (*field.Field, string, error) {
	w, h := cfg.Canvas.Width, cfg.Canvas.Height

	var (
		f     *field.Field
		title string
		err   error
	)
	switch {
	case cfg.Course == "":
		return nil, "No course", nil
	case registry.Exists(cfg.Course):
		f, err = courses.Build(cfg.Course, w, h, seed)
		for _, info := range registry.List() {
			if info.ID == cfg.Course {
				title = info.Title
			}
		}
	default:
		f, err = field.Load(cfg.Course, w, h)
		title = filepath.Base(cfg.Course)
	}
	if err != nil {
		return nil, "", err
	}
	return f.WithThreshold(uint8(cfg.Physics.ObstacleThreshold)), title, nil
}

// setupRace loads config, course and roster into a simulation.
func setupRace(rf raceFlags) (raceSetup, error) {
	cfg, err := loadRaceConfig(rf)
	if err != nil {
		return raceSetup{}, err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	f, title, err := loadCourse(cfg, seed)
	if err != nil {
		return raceSetup{}, err
	}

	eng := race.NewEngine(f, float64(cfg.Canvas.Width), float64(cfg.Canvas.Height))
	roster := race.NewRoster(cfg.Runners()...)
	return raceSetup{
		cfg:   cfg,
		title: title,
		seed:  seed,
		sim:   race.NewSimulation(eng, roster),
	}, nil
}
