package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhabedank/lumina/internal/identity"
	"github.com/dhabedank/lumina/internal/tui"
)

// LoginCmd signs in with the local profile.
var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in so bundles can be archived",
	Long: `Sign in with your local profile.

The name and email come from the profile section of ~/.lumina.yaml
(or LUMINA_PROFILE_NAME / LUMINA_PROFILE_EMAIL), falling back to
git's user.name and user.email.`,
	Args: cobra.NoArgs,
	RunE: withApp(runLogin),
}

// LogoutCmd signs out. History and archived bundles are kept.
var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE:  withApp(runLogout),
}

func runLogin(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	provider := identity.NewLocalProvider(identity.Profile{
		Name:  a.cfg.Profile.Name,
		Email: a.cfg.Profile.Email,
	})

	user, err := provider.Login(ctx)
	if errors.Is(err, identity.ErrNoProfile) {
		return fmt.Errorf("%w: set profile.name and profile.email in %s, or configure git", err, displayPath(a.configPath))
	}
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	if err := a.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	a.logger.Info().Str("user", user.ID).Msg("signed in")

	fmt.Println(tui.SuccessStyle.Render("✓") + " Signed in as " + tui.ItemTitleStyle.Render(user.Name))
	if user.Email != "" {
		fmt.Println(tui.HelpStyle.Render("  " + user.Email))
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string, a *app) error {
	ctx := cmd.Context()
	provider := identity.NewLocalProvider(identity.Profile{})
	if err := provider.Logout(ctx); err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}
	if err := a.store.SaveUser(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}
	a.logger.Info().Msg("signed out")

	fmt.Println(tui.SuccessStyle.Render("✓") + " Signed out")
	return nil
}

func displayPath(configPath string) string {
	if configPath == "" {
		return "~/.lumina.yaml"
	}
	return configPath
}
