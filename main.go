package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhabedank/lumina/cmd"
	"github.com/dhabedank/lumina/internal/config"
	"github.com/dhabedank/lumina/internal/version"
)

var appVersion = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumina",
		Short: "Literary discovery: books, films and series that share a soul",
		Long: `lumina asks about what you read and watch, then recommends four books
and two or three films or series to go with them.

Run without a subcommand to start the discovery wizard.`,
		Version:       appVersion,
		Args:          cobra.NoArgs,
		RunE:          cmd.RunDiscover,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.BindDiscoverFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&cmd.ConfigFile, "config", "", "Config file (default: ./.lumina.yaml or ~/.lumina.yaml)")

	rootCmd.AddCommand(
		cmd.DiscoverCmd,
		cmd.SetupCmd,
		cmd.HistoryCmd,
		cmd.ArchiveCmd,
		cmd.LoginCmd,
		cmd.LogoutCmd,
		cmd.ResetCmd,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The update check runs alongside the command and is reported after it
	dataDir := config.DataDir()
	updates := make(chan *version.CheckResult, 1)
	go func() {
		updates <- version.NewChecker(dataDir).CheckForUpdate(ctx, appVersion)
	}()

	firstRun := version.IsFirstRun(dataDir, config.FindFile(""))

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	if firstRun {
		version.PrintFirstRunNotice(dataDir)
	}
	select {
	case result := <-updates:
		version.PrintUpdateNotice(result)
	default:
	}

	if err != nil {
		stop()
		os.Exit(1)
	}
}
