package llm

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dhabedank/lumina/internal/core"
)

// CodexCLIAdapter uses the Codex CLI for generation.
type CodexCLIAdapter struct {
	model string
}

// NewCodexCLIAdapter creates a Codex CLI adapter.
func NewCodexCLIAdapter(config Config) *CodexCLIAdapter {
	model := config.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &CodexCLIAdapter{model: model}
}

func (a *CodexCLIAdapter) Name() string {
	return "codex-cli"
}

// IsAvailable checks if the codex CLI is installed.
func (a *CodexCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath("codex")
	return err == nil
}

func (a *CodexCLIAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (*core.DiscoveryResults, error) {
	// Codex has no separate system prompt flag
	combinedPrompt := fmt.Sprintf("SYSTEM INSTRUCTIONS:\n%s\n\nUSER REQUEST:\n%s", systemPrompt, userPrompt)

	cmd := exec.CommandContext(ctx, "codex",
		"--model", a.model,
		"--quiet",
	)
	cmd.Stdin = strings.NewReader(combinedPrompt)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("codex CLI failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("codex CLI failed: %w", err)
	}

	return parseJSONResponse(string(output))
}
