package llm

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dhabedank/lumina/internal/core"
)

// ClaudeCLIAdapter uses the Claude Code CLI for generation.
// This is preferred because users already have it authenticated.
type ClaudeCLIAdapter struct {
	model string
}

// NewClaudeCLIAdapter creates a Claude CLI adapter.
func NewClaudeCLIAdapter(config Config) *ClaudeCLIAdapter {
	model := config.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	return &ClaudeCLIAdapter{model: model}
}

func (a *ClaudeCLIAdapter) Name() string {
	return "claude-cli"
}

// IsAvailable checks if the claude CLI is installed.
func (a *ClaudeCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

func (a *ClaudeCLIAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (*core.DiscoveryResults, error) {
	// claude reads long system prompts from a file more reliably than from flags
	systemFile, err := os.CreateTemp("", "lumina-system-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create system prompt file: %w", err)
	}
	defer os.Remove(systemFile.Name())

	if _, err := systemFile.WriteString(systemPrompt); err != nil {
		systemFile.Close()
		return nil, fmt.Errorf("failed to write system prompt: %w", err)
	}
	systemFile.Close()

	cmd := exec.CommandContext(ctx, "claude",
		"--model", a.model,
		"--system-prompt-file", systemFile.Name(),
		"--print",
		"--output-format", "json",
		"--tools", "",
		"--no-session-persistence",
	)
	cmd.Stdin = strings.NewReader(userPrompt)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("claude CLI failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("claude CLI failed: %w", err)
	}

	return parseJSONResponse(string(output))
}
