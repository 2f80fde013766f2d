package llm

import (
	"fmt"
	"os"
	"os/exec"
)

// ModelInfo describes an available model.
type ModelInfo struct {
	ID          string // Model identifier (e.g., "claude-sonnet-4-5-20250929")
	Name        string // Human-readable name (e.g., "Claude Sonnet 4.5")
	Description string // Brief description
	Provider    string // Adapter that serves it (e.g., "anthropic-api", "ollama")
}

// claudeModels lists Claude models usable through the CLI or the API.
var claudeModels = []ModelInfo{
	{ID: "claude-sonnet-4-5-20250929", Name: "Claude Sonnet 4.5", Description: "Best balance of taste and speed ($3/$15 per MTok)"},
	{ID: "claude-haiku-4-5-20251001", Name: "Claude Haiku 4.5", Description: "Fastest, most cost-effective ($1/$5 per MTok)"},
	{ID: "claude-opus-4-5-20251101", Name: "Claude Opus 4.5", Description: "Deepest literary knowledge ($5/$25 per MTok)"},
}

// openAIModels lists OpenAI models usable through the CLI or the API.
var openAIModels = []ModelInfo{
	{ID: "gpt-4o-mini", Name: "GPT-4o Mini", Description: "Most cost-effective"},
	{ID: "gpt-4o", Name: "GPT-4o", Description: "Fast multimodal model"},
	{ID: "o3-mini", Name: "O3 Mini", Description: "Fast reasoning model"},
}

// ollamaModels lists common local models; any pulled model name also works.
var ollamaModels = []ModelInfo{
	{ID: "llama3.1", Name: "Llama 3.1 (local)", Description: "Runs on your machine via Ollama"},
	{ID: "qwen2.5", Name: "Qwen 2.5 (local)", Description: "Runs on your machine via Ollama"},
}

func withProvider(models []ModelInfo, provider string) []ModelInfo {
	out := make([]ModelInfo, len(models))
	for i, m := range models {
		m.Provider = provider
		out[i] = m
	}
	return out
}

// AvailableModels returns models grouped by adapter based on installed CLIs,
// API keys in the environment and a reachable Ollama daemon.
func AvailableModels(config Config) map[string][]ModelInfo {
	result := make(map[string][]ModelInfo)

	if _, err := exec.LookPath("claude"); err == nil {
		result["claude-cli"] = withProvider(claudeModels, "claude-cli")
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		result["anthropic-api"] = withProvider(claudeModels, "anthropic-api")
	}
	if _, err := exec.LookPath("codex"); err == nil {
		result["codex-cli"] = withProvider(openAIModels, "codex-cli")
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		result["openai-api"] = withProvider(openAIModels, "openai-api")
	}
	if ollama, err := NewOllamaAdapter(config); err == nil && ollama.IsAvailable() {
		result["ollama"] = withProvider(ollamaModels, "ollama")
	}

	return result
}

// providerOrder is the preference order used by detection and listings.
var providerOrder = []string{"claude-cli", "codex-cli", "anthropic-api", "openai-api", "ollama"}

// AllModels returns a flat list of all available models.
func AllModels(config Config) []ModelInfo {
	available := AvailableModels(config)
	var result []ModelInfo
	for _, provider := range providerOrder {
		result = append(result, available[provider]...)
	}
	return result
}

// NewAdapter builds the adapter named by config.Provider.
func NewAdapter(config Config) (Adapter, error) {
	switch config.Provider {
	case "", "auto":
		return DetectBestAdapter(config)
	case "claude-cli":
		adapter := NewClaudeCLIAdapter(config)
		if !adapter.IsAvailable() {
			return nil, fmt.Errorf("Claude CLI not available - install Claude Code")
		}
		return adapter, nil
	case "codex-cli":
		adapter := NewCodexCLIAdapter(config)
		if !adapter.IsAvailable() {
			return nil, fmt.Errorf("Codex CLI not available - install Codex")
		}
		return adapter, nil
	case "anthropic-api":
		return NewAnthropicAPIAdapter(config)
	case "openai-api":
		return NewOpenAIAPIAdapter(config)
	case "ollama":
		return NewOllamaAdapter(config)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", config.Provider)
	}
}

// DetectBestAdapter finds the best available LLM adapter.
// Priority: Claude CLI > Codex CLI > Anthropic API > OpenAI API > Ollama
//
// A configured APIKey or BaseURL belongs to one provider and cannot be
// tried against the others, so detection ignores both and each API
// adapter reads its own environment variable.
func DetectBestAdapter(config Config) (Adapter, error) {
	config.APIKey = ""
	config.BaseURL = ""

	if config.PreferCLI {
		claude := NewClaudeCLIAdapter(config)
		if claude.IsAvailable() {
			return claude, nil
		}

		codex := NewCodexCLIAdapter(config)
		if codex.IsAvailable() {
			return codex, nil
		}
	}

	if anthropic, err := NewAnthropicAPIAdapter(config); err == nil {
		return anthropic, nil
	}

	if openai, err := NewOpenAIAPIAdapter(config); err == nil {
		return openai, nil
	}

	if ollama, err := NewOllamaAdapter(config); err == nil && ollama.IsAvailable() {
		return ollama, nil
	}

	return nil, fmt.Errorf("no LLM adapter available - install Claude Code or Codex, set ANTHROPIC_API_KEY or OPENAI_API_KEY, or start Ollama")
}
