package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-derby/internal/core"
	"github.com/vovakirdan/tui-derby/internal/race"
)

var (
	raceFlagsProbe raceFlags
	flagProbeRing  float64
)

var probeCmd = &cobra.Command{
	Use:   "probe <x> <y>",
	Short: "Inspect the course at a point",
	Long: `Report whether a canvas point is on an obstacle, the alpha value of its
cell and the surface normal there. With --radius, also sample the ring a
runner of that radius centred on the point would probe.

Examples:
  derby probe 320 240 --course oval
  derby probe 100 100 --course ./track.png --radius 16`,
	Args: cobra.ExactArgs(2),
	Run:  runProbe,
}

func init() {
	raceFlagsProbe.bind(probeCmd)
	probeCmd.Flags().Float64Var(&flagProbeRing, "radius", 0, "Runner radius to probe around the point")
}

func runProbe(_ *cobra.Command, args []string) {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fail("invalid x %q: %v", args[0], err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fail("invalid y %q: %v", args[1], err)
	}

	setup, err := setupRace(raceFlagsProbe)
	if err != nil {
		fail("%v", err)
	}
	eng := setup.sim.Engine()
	f := eng.Field()

	fmt.Printf("Course:   %s\n", setup.title)
	fmt.Printf("Point:    (%.2f, %.2f)\n", x, y)
	fmt.Printf("Alpha:    %d (threshold %d)\n", f.Alpha(int(x), int(y)), f.Threshold())
	fmt.Printf("Obstacle: %t\n", f.IsObstacle(x, y))
	n := f.NormalAt(x, y)
	fmt.Printf("Normal:   (%.4f, %.4f)\n", n.X, n.Y)

	if flagProbeRing <= 0 {
		return
	}

	a := race.NewAgent(core.V(x, y), 0, flagProbeRing, race.DefaultSpeed)
	fmt.Println()
	fmt.Printf("  %7s  %-18s  %-3s  %s\n", "Angle", "Point", "Hit", "Normal")
	for _, h := range eng.Probe(a) {
		normal := "-"
		if h.Hit {
			normal = fmt.Sprintf("(%.3f, %.3f)", h.Normal.X, h.Normal.Y)
			if h.Fallback {
				normal += " radial"
			}
		}
		fmt.Printf("  %6.1f°  (%7.2f, %7.2f)  %-3s  %s\n",
			h.Angle*180/math.Pi, h.Point.X, h.Point.Y, yesNo(h.Hit), normal)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
