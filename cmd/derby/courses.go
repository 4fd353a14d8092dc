package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-derby/internal/registry"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List built-in courses",
	Long:  `Shows every built-in course. Any image file can be used as a course too.`,
	Run:   runCourses,
}

func runCourses(_ *cobra.Command, _ []string) {
	list := registry.List()

	if len(list) == 0 {
		fmt.Println("No courses available.")
		return
	}

	fmt.Println("Built-in courses:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, c := range list {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, c := range list {
		fmt.Printf("  %-*s  %s\n", maxIDLen, c.ID, c.Title)
	}

	fmt.Println()
	fmt.Println("Run 'derby race --course <id>' to race on a course.")
}
