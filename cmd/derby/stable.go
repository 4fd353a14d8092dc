package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-derby/internal/config"
	"github.com/vovakirdan/tui-derby/internal/storage"
)

var (
	flagStableRoster string
	flagStableCourse string
)

var stableCmd = &cobra.Command{
	Use:   "stable",
	Short: "Manage saved rosters",
	Long: `A stable is a named roster, optionally tied to a course, kept in the
stables database. Race one with 'derby race --stable <name>'.

Examples:
  derby stable save friday --roster ./runners.yaml --course pillars
  derby stable list
  derby stable show friday > runners.yaml
  derby stable delete friday`,
}

var stableSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a roster as a stable",
	Long: `Save the roster from --roster, or from the race config when omitted,
under name. An existing stable with that name is replaced.`,
	Args: cobra.ExactArgs(1),
	Run:  runStableSave,
}

var stableListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stables",
	Args:  cobra.NoArgs,
	Run:   runStableList,
}

var stableShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stable's roster as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runStableShow,
}

var stableDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stable",
	Args:  cobra.ExactArgs(1),
	Run:   runStableDelete,
}

func init() {
	stableSaveCmd.Flags().StringVar(&flagStableRoster, "roster", "", "Path to a roster YAML file")
	stableSaveCmd.Flags().StringVar(&flagStableCourse, "course", "", "Course to store with the roster")

	stableCmd.AddCommand(stableSaveCmd)
	stableCmd.AddCommand(stableListCmd)
	stableCmd.AddCommand(stableShowCmd)
	stableCmd.AddCommand(stableDeleteCmd)
}

// openStore opens the stables database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening stables database: %v", err)
	}
	return store
}

func runStableSave(_ *cobra.Command, args []string) {
	cfg, err := loadRaceConfig(raceFlags{roster: flagStableRoster, course: flagStableCourse})
	if err != nil {
		fail("%v", err)
	}
	course := flagStableCourse

	store := openStore()
	defer store.Close()

	id, err := store.SaveStable(args[0], course, cfg.Roster)
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Saved stable %q (#%d) with %d runners\n", args[0], id, len(cfg.Roster))
}

func runStableList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	stables, err := store.Stables()
	if err != nil {
		fail("%v", err)
	}
	if len(stables) == 0 {
		fmt.Println("No stables saved yet.")
		return
	}

	fmt.Printf("  %-16s  %-10s  %7s  %s\n", "Name", "Course", "Runners", "Updated")
	fmt.Printf("  %-16s  %-10s  %7s  %s\n", "----", "------", "-------", "-------")
	for _, st := range stables {
		course := st.Course
		if course == "" {
			course = "-"
		}
		fmt.Printf("  %-16s  %-10s  %7d  %s\n", st.Name, course, st.Runners, st.UpdatedAt.Format("Jan 02 15:04"))
	}
}

func runStableShow(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	st, err := store.Stable(args[0])
	if err != nil {
		fail("%v", err)
	}
	data, err := config.MarshalRoster(st.Runners)
	if err != nil {
		fail("%v", err)
	}
	if st.Course != "" {
		fmt.Printf("# course: %s\n", st.Course)
	}
	os.Stdout.Write(data) //nolint:errcheck // stdout
}

func runStableDelete(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteStable(args[0]); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Deleted stable %q\n", args[0])
}
