package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhabedank/lumina/internal/core"
	"github.com/dhabedank/lumina/internal/output"
	"github.com/dhabedank/lumina/internal/tui"
)

var (
	exportFormat string
	exportOutput string
	noReasons    bool
	noArtwork    bool
)

// ArchiveCmd groups the commands that work on saved bundles.
var ArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse, export and delete saved bundles",
	Long: `Work with the bundles you archived from the wizard.

Bundles are addressed by the short ID shown in 'lumina archive list'.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved bundles",
	Args:  cobra.NoArgs,
	RunE:  withApp(runArchiveList),
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved bundle",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runArchiveShow),
}

var archiveExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved bundle as JSON or Markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runArchiveExport),
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved bundle",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runArchiveDelete),
}

func init() {
	archiveExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "Output format ("+strings.Join(output.Formats, "/")+")")
	archiveExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	archiveExportCmd.Flags().BoolVar(&noReasons, "no-reasons", false, "Leave out the why-this-fits text")
	archiveExportCmd.Flags().BoolVar(&noArtwork, "no-artwork", false, "Leave out cover and poster URLs")

	ArchiveCmd.AddCommand(archiveListCmd, archiveShowCmd, archiveExportCmd, archiveDeleteCmd)
}

func runArchiveList(cmd *cobra.Command, args []string, a *app) error {
	state, err := a.store.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load archive: %w", err)
	}

	if len(state.SavedLists) == 0 {
		fmt.Println("The archive is empty. Sign in and press 's' on a result to save one.")
		return nil
	}

	for _, list := range state.SavedLists {
		when := time.UnixMilli(list.Timestamp).Format("Jan 2, 2006")
		fmt.Printf("%s  %s  %s\n",
			tui.ModelStyle.Render(list.ID),
			tui.ItemTitleStyle.Render(list.Name),
			tui.HelpStyle.Render(fmt.Sprintf("%s · %d books · %d on screen", when, len(list.Results.Books), len(list.Results.Movies))),
		)
	}
	return nil
}

func runArchiveShow(cmd *cobra.Command, args []string, a *app) error {
	list, err := findSaved(cmd, a, args[0])
	if err != nil {
		return err
	}
	return output.Export(output.NewMarkdownAdapter(output.DefaultConfig()), list, "")
}

func runArchiveExport(cmd *cobra.Command, args []string, a *app) error {
	list, err := findSaved(cmd, a, args[0])
	if err != nil {
		return err
	}

	outConfig := output.DefaultConfig()
	outConfig.IncludeReasons = !noReasons
	outConfig.IncludeArtwork = !noArtwork

	adapter, err := output.New(exportFormat, outConfig)
	if err != nil {
		return err
	}
	if err := output.Export(adapter, list, exportOutput); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	a.logger.Info().Str("id", list.ID).Str("format", adapter.Name()).Str("path", exportOutput).Msg("bundle exported")
	if exportOutput != "" {
		fmt.Println(tui.SuccessStyle.Render("✓") + " Exported " + list.Name + " to " + exportOutput)
	}
	return nil
}

func runArchiveDelete(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	state, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load archive: %w", err)
	}

	kept := make([]core.SavedList, 0, len(state.SavedLists))
	var removed *core.SavedList
	for _, list := range state.SavedLists {
		if list.ID == args[0] {
			removed = &list
			continue
		}
		kept = append(kept, list)
	}
	if removed == nil {
		return fmt.Errorf("no saved bundle with id %q", args[0])
	}

	if err := a.store.Save(ctx, state.History, kept, state.User); err != nil {
		return fmt.Errorf("failed to save archive: %w", err)
	}
	fmt.Println(tui.SuccessStyle.Render("✓") + " Deleted " + removed.Name)
	return nil
}

func findSaved(cmd *cobra.Command, a *app, listID string) (core.SavedList, error) {
	state, err := a.store.Load(cmd.Context())
	if err != nil {
		return core.SavedList{}, fmt.Errorf("failed to load archive: %w", err)
	}
	for _, list := range state.SavedLists {
		if list.ID == listID {
			return list, nil
		}
	}
	return core.SavedList{}, fmt.Errorf("no saved bundle with id %q", listID)
}
