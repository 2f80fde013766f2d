package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhabedank/lumina/internal/core"
	"github.com/dhabedank/lumina/internal/tui"
)

var historyLimit int

// HistoryCmd prints recent discoveries.
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your recent discoveries",
	Long: `List the most recent discovery sessions, newest first.

Only the last ten sessions are kept. Their books are excluded from future
recommendations.`,
	Args: cobra.NoArgs,
	RunE: withApp(runHistory),
}

func init() {
	HistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", core.MaxHistory, "Number of sessions to show")
}

func runHistory(cmd *cobra.Command, args []string, a *app) error {
	state, err := a.store.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(state.History) == 0 {
		fmt.Println("No discoveries yet. Run " + tui.ModelStyle.Render("lumina") + " to start one.")
		return nil
	}

	sessions := state.History
	if historyLimit > 0 && historyLimit < len(sessions) {
		sessions = sessions[:historyLimit]
	}

	for i, s := range sessions {
		when := time.UnixMilli(s.Timestamp).Format("Jan 2, 2006 15:04")
		fmt.Printf("%s %s  %s\n",
			tui.SubtitleStyle.Render(fmt.Sprintf("%2d.", i+1)),
			tui.ItemTitleStyle.Render(when),
			tui.HelpStyle.Render(profileLine(s.Preferences)),
		)
		for _, b := range s.Results.Books {
			fmt.Printf("      %s %s\n", b.Title, tui.HelpStyle.Render("by "+b.Author))
		}
		for _, m := range s.Results.Movies {
			fmt.Printf("      %s %s\n", m.Title, tui.HelpStyle.Render(fmt.Sprintf("(%s, %s)", m.Type, m.Year)))
		}
		fmt.Println()
	}
	return nil
}

// profileLine summarizes preferences as "Fantasy + Mystery · Heartwarming · Moderate".
func profileLine(p core.Preferences) string {
	genre := p.PrimaryGenre
	if p.SecondaryGenre != "" {
		genre += " + " + p.SecondaryGenre
	}
	parts := []string{}
	for _, s := range []string{genre, p.Mood, p.Pace} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}
