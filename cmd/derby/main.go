// derby is a terminal runner-race simulator: circular runners bounce off
// an obstacle course and each other at constant speed.
//
// Usage:
//
//	derby race               - Watch a race in the terminal
//	derby sim                - Run a race headless and print standings
//	derby probe <x> <y>      - Inspect the course at a point
//	derby courses            - List built-in courses
//	derby stable ...         - Save, list, show and delete rosters
//	derby serve              - Start SSH server for remote viewing
//
// Global flags:
//
//	--config <path> - Race config YAML
//	--fps <rate>    - Set tick rate (default: from config)
//	--seed <value>  - Seed for procedural courses
//	--db <path>     - Set database path (default: ~/.derby/stables.db)
//	--verbose       - Debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "derby",
	Short: "TUI Derby - Watch runners race across an obstacle course",
	Long: `TUI Derby simulates circular runners moving at constant speed across
an obstacle course. Runners bounce off obstacles, the canvas walls and
each other. Races are precomputed and played back, or stepped live.

Available commands:
  race     - Watch a race interactively
  sim      - Run a race headless and print the result
  probe    - Inspect the course at a point
  courses  - Show built-in courses
  stable   - Manage saved rosters
  serve    - Start SSH server for remote viewing

Examples:
  derby race
  derby race --course pillars --preset sprint
  derby race --course ./track.png --roster ./runners.yaml
  derby sim --plot
  derby stable save friday --roster ./runners.yaml
  derby serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to race config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Course seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.derby/stables.db", "Path to stables database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(raceCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(stableCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "derby",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
