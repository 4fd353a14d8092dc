package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-derby/internal/platform/tui"
	"github.com/vovakirdan/tui-derby/internal/playback"
)

var (
	raceFlagsServe  raceFlags
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the derby SSH server",
	Long: `Start an SSH server where every connection watches its own race.

Each session builds the race from the same config, course and roster
flags. Procedural courses get a fresh seed per session unless --seed is
set.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.derby/host_key

Examples:
  derby serve                           # Listen on :23235 with auto-generated key
  derby serve --ssh :2222               # Listen on port 2222
  derby serve --course meadow --preset marathon

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	raceFlagsServe.bind(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	// Fail fast on a bad config before accepting sessions.
	probe, err := setupRace(raceFlagsServe)
	if err != nil {
		fail("%v", err)
	}

	logger := newLogger(os.Stderr)
	newRace := func() (*playback.Controller, string, error) {
		setup, err := setupRace(raceFlagsServe)
		if err != nil {
			return nil, "", err
		}
		return setup.controller(logger.WithPrefix("derby-race")), setup.title, nil
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    probe.tickRate(),
	}

	server, err := tui.NewSSHServer(cfg, newRace, logger.WithPrefix("derby-ssh"))
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting derby SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
