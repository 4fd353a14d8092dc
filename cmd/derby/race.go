package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-derby/internal/core"
	"github.com/vovakirdan/tui-derby/internal/platform/tui"
)

var raceFlagsRace raceFlags

var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Watch a race",
	Long: `Set up a race and watch it in the terminal.

The course is a built-in course id (see 'derby courses') or a path to an
image: every pixel whose alpha exceeds the obstacle threshold blocks
runners. The image is scaled to the canvas.

Controls:
  Space/Enter - Play or resume (builds the frame cache first)
  P           - Pause
  S/Esc       - Stop and return runners to their start
  L           - Toggle live stepping while stopped
  R           - Restart
  D           - Toggle debug overlay (radius, heading, probe hits)
  T           - Toggle standings table
  Ctrl+S      - Save a screenshot to ~/.derby/screenshots
  Q/Ctrl+C    - Quit

Examples:
  derby race
  derby race --course meadow --seed 7
  derby race --course ./track.png --roster ./runners.yaml
  derby race --stable friday --preset marathon`,
	Run: runRace,
}

func init() {
	raceFlagsRace.bind(raceCmd)
}

func runRace(_ *cobra.Command, _ []string) {
	setup, err := setupRace(raceFlagsRace)
	if err != nil {
		fail("%v", err)
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = setup.tickRate()
	cfg.Seed = setup.seed

	// The alt screen owns the terminal, so logs go to a file when verbose.
	logger := log.New(io.Discard)
	if flagVerbose {
		if logFile, logErr := openLogFile(); logErr == nil {
			defer logFile.Close()
			logger = newLogger(logFile)
		}
	}
	logger.Info("race", "course", setup.title, "runners", setup.sim.Roster().Len(), "frames", setup.cfg.Playback.Frames, "seed", setup.seed)

	if err := tui.Run(setup.controller(logger), setup.title, cfg); err != nil {
		fail("running race: %v", err)
	}
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".derby")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "race.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
