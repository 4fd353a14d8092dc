package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-derby/internal/playback"
	"github.com/vovakirdan/tui-derby/internal/race"
)

var (
	raceFlagsSim raceFlags
	flagPlot     bool
	flagFrames   int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a race headless",
	Long: `Precompute a race without a terminal UI and print the final standings,
event totals and a hash of every frame. The same config, roster, course
and seed always give the same hash.

Examples:
  derby sim
  derby sim --course pillars --seed 42 --frames 3000
  derby sim --plot`,
	Run: runSim,
}

func init() {
	raceFlagsSim.bind(simCmd)
	simCmd.Flags().BoolVar(&flagPlot, "plot", false, "Plot runner collisions per frame")
	simCmd.Flags().IntVar(&flagFrames, "frames", 0, "Number of frames (0 = use config)")
}

func runSim(_ *cobra.Command, _ []string) {
	setup, err := setupRace(raceFlagsSim)
	if err != nil {
		fail("%v", err)
	}
	if flagFrames > 0 {
		setup.cfg.Playback.Frames = flagFrames
	}
	logger := newLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("building cache", "course", setup.title, "runners", setup.sim.Roster().Len(), "frames", setup.cfg.Playback.Frames)
	cache, err := playback.BuildCache(ctx, setup.sim.Engine(), setup.sim.State(), setup.cfg.Playback.Frames,
		playback.WithBudget(setup.cfg.CacheBudget()))
	if err != nil {
		fail("%v", err)
	}

	var odo race.Odometer
	odo.Reset(cache.Frame(0))
	for i := 1; i < cache.Len(); i++ {
		odo.Observe(cache.Frame(i))
	}

	runners := setup.sim.Roster().Runners()
	totals := cache.Totals()

	fmt.Printf("Race - %s (seed %d)\n", setup.title, setup.seed)
	fmt.Printf("%d frames, %d runners\n\n", cache.Len(), len(runners))

	fmt.Printf("  %-4s  %-16s  %10s\n", "Rank", "Runner", "Distance")
	fmt.Printf("  %-4s  %-16s  %10s\n", "----", "------", "--------")
	for _, st := range odo.Standings() {
		fmt.Printf("  %-4d  %-16s  %10.1f\n", st.Rank, runners[st.Index].Label(), st.Distance)
	}

	fmt.Println()
	fmt.Printf("Obstacle bounces: %d\n", totals.ObstacleBounces)
	fmt.Printf("Wall bounces:     %d\n", totals.WallBounces)
	fmt.Printf("Collisions:       %d\n", totals.Collisions)
	fmt.Printf("Frame hash:       %016x\n", cache.Hash())

	if flagPlot {
		fmt.Println()
		fmt.Println(asciigraph.Plot(collisionSeries(cache),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("runner collisions per frame"),
		))
	}
}

// collisionSeries returns the collision count of every frame after the first.
func collisionSeries(cache *playback.FrameCache) []float64 {
	data := make([]float64, 0, cache.Len())
	for i := 1; i < cache.Len(); i++ {
		data = append(data, float64(cache.Stats(i).Collisions))
	}
	if len(data) == 0 {
		data = append(data, 0)
	}
	return data
}
