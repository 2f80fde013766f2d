package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhabedank/lumina/internal/tui"
)

var confirmReset bool

// ResetCmd clears history, archived bundles and the signed-in user.
var ResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete history, archived bundles and the signed-in user",
	Long: `Clear everything lumina has stored. Configuration is not touched;
use 'lumina setup --reset' for that.`,
	Args: cobra.NoArgs,
	RunE: withApp(runReset),
}

func init() {
	ResetCmd.Flags().BoolVarP(&confirmReset, "yes", "y", false, "Confirm that all stored data should be deleted")
}

func runReset(cmd *cobra.Command, args []string, a *app) error {
	if !confirmReset {
		return fmt.Errorf("refusing to delete %s without --yes", a.cfg.Storage.Dir)
	}
	if err := a.store.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	fmt.Println(tui.SuccessStyle.Render("✓") + " History, archive and sign-in cleared")
	return nil
}
