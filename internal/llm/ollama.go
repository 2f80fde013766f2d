package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/dhabedank/lumina/internal/core"
)

const defaultOllamaURL = "http://127.0.0.1:11434"

// OllamaAdapter runs generation against a local or remote Ollama server.
type OllamaAdapter struct {
	client    *api.Client
	baseURL   string
	model     string
	maxTokens int
}

// NewOllamaAdapter creates an Ollama adapter. BaseURL defaults to the local daemon.
func NewOllamaAdapter(config Config) (*OllamaAdapter, error) {
	base := config.BaseURL
	if base == "" {
		base = defaultOllamaURL
	}
	// api.NewClient wants the bare host, not the OpenAI-compatible /v1 path
	base = strings.TrimSuffix(strings.TrimSuffix(base, "/"), "/v1")

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL %q: %w", base, err)
	}

	httpClient := &http.Client{}
	if config.Timeout > 0 {
		httpClient.Timeout = config.Timeout
	}

	model := config.Model
	if model == "" {
		model = "llama3.1"
	}

	return &OllamaAdapter{
		client:    api.NewClient(parsed, httpClient),
		baseURL:   base,
		model:     model,
		maxTokens: config.MaxTokens,
	}, nil
}

func (a *OllamaAdapter) Name() string {
	return "ollama"
}

// IsAvailable pings the server with a short deadline.
func (a *OllamaAdapter) IsAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := a.client.Version(ctx)
	return err == nil
}

func (a *OllamaAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (*core.DiscoveryResults, error) {
	stream := false
	req := &api.ChatRequest{
		Model: a.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Format: json.RawMessage(`"json"`),
		Stream: &stream,
	}
	if a.maxTokens > 0 {
		req.Options = map[string]any{"num_predict": a.maxTokens}
	}

	var output strings.Builder
	err := a.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		output.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat error (%s): %w", a.baseURL, err)
	}
	if output.Len() == 0 {
		return nil, fmt.Errorf("ollama returned an empty response")
	}

	return parseJSONResponse(output.String())
}
