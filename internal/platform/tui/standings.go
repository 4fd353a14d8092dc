package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-derby/internal/race"
)

// StandingsRows builds one table row per standing, best first.
func StandingsRows(standings []race.Standing, runners []race.Runner) []table.Row {
	rows := make([]table.Row, len(standings))
	for i, st := range standings {
		name := fmt.Sprintf("#%d", st.Index)
		if st.Index < len(runners) {
			name = runners[st.Index].Label()
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", st.Rank),
			name,
			fmt.Sprintf("%.0f", st.Distance),
		}
	}
	return rows
}

// newStandingsTable creates the standings table sized to height rows.
func newStandingsTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Runner", Width: 14},
		{Title: "Distance", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Bold(false)
	t.SetStyles(s)

	return t
}
