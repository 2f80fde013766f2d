package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dhabedank/lumina/internal/artwork"
	"github.com/dhabedank/lumina/internal/config"
	"github.com/dhabedank/lumina/internal/core"
	"github.com/dhabedank/lumina/internal/id"
	"github.com/dhabedank/lumina/internal/identity"
	"github.com/dhabedank/lumina/internal/llm"
	"github.com/dhabedank/lumina/internal/logging"
	"github.com/dhabedank/lumina/internal/tui"
	"github.com/dhabedank/lumina/internal/wizard"
)

var (
	llmProvider string
	llmModel    string
	ephemeral   bool
)

// DiscoverCmd runs the discovery wizard. The root command runs it too.
var DiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find your next books, films and series",
	Long: `Start the discovery wizard.

Four short questions (reading history, genres, films and series, mood)
produce a bundle of four books and two or three films or series, with
covers and posters where they can be found.

Every bundle is kept in your recent history and its books are never
suggested again. Sign in (ctrl+l) to archive bundles you want to keep.`,
	Args: cobra.NoArgs,
	RunE: RunDiscover,
}

func init() {
	BindDiscoverFlags(DiscoverCmd)
}

// BindDiscoverFlags registers the wizard flags on c.
func BindDiscoverFlags(c *cobra.Command) {
	c.Flags().StringVarP(&llmProvider, "llm", "l", "auto", "LLM provider (auto/anthropic-api/openai-api/ollama/claude-cli/codex-cli)")
	c.Flags().StringVarP(&llmModel, "model", "m", "", "Model to use (provider-specific)")
	c.Flags().BoolVar(&ephemeral, "ephemeral", false, "Use a throwaway store; nothing is written to disk")
}

// RunDiscover is the RunE of the discover and root commands.
func RunDiscover(cmd *cobra.Command, args []string) (err error) {
	a, err := openApp(ephemeral)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()

	// Flags override the config file only when given
	llmConfig := a.cfg.LLM.AdapterConfig()
	if cmd.Flags().Changed("llm") {
		llmConfig.Provider = llmProvider
	}
	if cmd.Flags().Changed("model") {
		llmConfig.Model = llmModel
	}

	adapter, err := llm.NewAdapter(llmConfig)
	if err != nil {
		return fmt.Errorf("failed to create LLM adapter: %w", err)
	}
	guarded := llm.Guard(adapter, logging.Component("llm"))
	pipeline := newPipeline(a.cfg, guarded)

	ctx := cmd.Context()
	loaded, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load saved state: %w", err)
	}

	a.logger.Info().
		Str("adapter", guarded.Name()).
		Str("model", llmConfig.Model).
		Int("history", len(loaded.History)).
		Int("saved", len(loaded.SavedLists)).
		Msg("starting wizard")

	model := tui.NewWizard(ctx, tui.Deps{
		Pipeline: pipeline,
		Store:    a.store,
		Identity: identity.NewLocalProvider(identity.Profile{
			Name:  a.cfg.Profile.Name,
			Email: a.cfg.Profile.Email,
		}),
		Logger:   logging.Component("wizard"),
		Provider: guarded.Name(),
		Model:    llmConfig.Model,
		NewID:    id.New,
	}, wizard.New(loaded.History, loaded.SavedLists, loaded.User))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	model.Flush()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("wizard failed: %w", err)
	}

	if w, ok := final.(tui.Wizard); ok {
		state := w.State()
		fmt.Printf("%s %d discoveries in history, %d bundles archived\n",
			tui.SuccessStyle.Render("✓"), len(state.History), len(state.Saved))
		if ephemeral {
			fmt.Println(tui.HelpStyle.Render("  Ephemeral run: nothing was saved"))
		}
	}
	return nil
}

// newPipeline wires the recommender and both artwork sources.
func newPipeline(cfg *config.Config, adapter core.LLMAdapter) *core.Pipeline {
	artworkLogger := logging.Component("artwork")

	covers := artwork.NewOpenLibrary(artwork.Options{
		BaseURL: cfg.Artwork.OpenLibraryURL,
		Timeout: cfg.Artwork.Timeout,
		Logger:  artworkLogger,
	}, cfg.Artwork.CoversURL)
	posters := artwork.NewITunes(artwork.Options{
		BaseURL: cfg.Artwork.ITunesURL,
		Timeout: cfg.Artwork.Timeout,
		Logger:  artworkLogger,
	})

	recommender := core.NewRecommender(adapter, logging.Logger())
	return core.NewPipeline(recommender, artwork.NewEnricher(covers, posters), cfg.LLM.Timeout, logging.Logger())
}
