package llm

import (
	"context"
	"time"

	"github.com/dhabedank/lumina/internal/core"
)

// Adapter is the interface all LLM adapters must implement.
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// IsAvailable checks if this adapter can be used (CLI installed, API key set, etc.)
	IsAvailable() bool

	// Generate sends prompts to the LLM and returns the parsed bundle.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (*core.DiscoveryResults, error)
}

// Config holds configuration for LLM adapters.
type Config struct {
	// Provider selects an adapter: auto, anthropic-api, openai-api, ollama, claude-cli, codex-cli.
	Provider string `yaml:"provider"`

	// PreferCLI prefers CLI tools (claude, codex) over API when available.
	PreferCLI bool `yaml:"prefer_cli"`

	// Model specifies which model to use (optional, adapter chooses default).
	Model string `yaml:"model"`

	// APIKey for direct API access (optional if CLI is used).
	APIKey string `yaml:"-"`

	// BaseURL overrides the API endpoint (OpenAI-compatible gateways, remote Ollama).
	BaseURL string `yaml:"base_url"`

	// MaxTokens limits response length.
	MaxTokens int `yaml:"max_tokens"`

	// Timeout bounds HTTP based adapters. Zero means no client timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "auto",
		PreferCLI: true, // Use CLI tools when available (already authenticated)
		MaxTokens: 4096,
		Timeout:   2 * time.Minute,
	}
}
