package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dhabedank/lumina/internal/config"
	"github.com/dhabedank/lumina/internal/llm"
	"github.com/dhabedank/lumina/internal/tui"
)

var resetConfig bool

// SetupCmd represents the setup command.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose the model that writes your recommendations",
	Long: `Pick a recommendation model with an interactive list.

Only models you can actually reach are listed: installed Claude or Codex
CLIs, ANTHROPIC_API_KEY or OPENAI_API_KEY in the environment, and a
running Ollama daemon.

The choice is saved to ~/.lumina.yaml; other settings in that file are kept.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	SetupCmd.Flags().BoolVar(&resetConfig, "reset", false, "Reset configuration to defaults")
}

func runSetup(cmd *cobra.Command, args []string) error {
	configPath := config.HomePath()

	if resetConfig {
		if err := config.Remove(configPath); err != nil {
			return fmt.Errorf("failed to remove config: %w", err)
		}
		fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration reset to defaults")
		fmt.Printf("  Removed: %s\n", configPath)
		return nil
	}

	models := llm.AllModels(llm.DefaultConfig())
	if len(models) == 0 {
		return fmt.Errorf("no LLM providers detected. Install Claude Code or Codex, set an API key, or start Ollama")
	}

	p := tea.NewProgram(newSetupModel(models))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	final := m.(setupModel)
	if final.cancelled || final.selected == nil {
		fmt.Println("Setup cancelled")
		return nil
	}

	choice := *final.selected
	if err := config.SaveLLMChoice(configPath, choice.Provider, choice.ID); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration saved to " + configPath)
	fmt.Println()
	fmt.Printf("  Provider: %s\n", tui.ModelStyle.Render(choice.Provider))
	fmt.Printf("  Model:    %s\n", tui.ModelStyle.Render(choice.ID))
	return nil
}

// Bubble Tea model for the model picker

type setupModel struct {
	list      list.Model
	selected  *llm.ModelInfo
	cancelled bool
}

type modelItem struct {
	info llm.ModelInfo
}

func (m modelItem) Title() string { return m.info.Name }
func (m modelItem) Description() string {
	return fmt.Sprintf("%s · %s", m.info.Provider, m.info.Description)
}
func (m modelItem) FilterValue() string { return m.info.Name + " " + m.info.Provider }

func newSetupModel(models []llm.ModelInfo) setupModel {
	items := make([]list.Item, len(models))
	for i, m := range models {
		items[i] = modelItem{info: m}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(tui.ColorPrimary).BorderForeground(tui.ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(tui.ColorMuted).BorderForeground(tui.ColorPrimary)

	l := list.New(items, delegate, 70, 16)
	l.Title = "Select Recommendation Model"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.Styles.Title = tui.TitleStyle

	return setupModel{list: l}
}

func (m setupModel) Init() tea.Cmd {
	return nil
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if item, ok := m.list.SelectedItem().(modelItem); ok {
				info := item.info
				m.selected = &info
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m setupModel) View() string {
	if m.cancelled || m.selected != nil {
		return ""
	}
	help := tui.HelpStyle.Render("\n  ↑/↓: navigate • /: filter • enter: select • q: quit")
	return "\n" + m.list.View() + help
}
