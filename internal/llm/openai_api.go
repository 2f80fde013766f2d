package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dhabedank/lumina/internal/core"
)

// OpenAIAPIAdapter talks to the OpenAI chat completions API or any
// compatible gateway (OpenRouter, vLLM) through BaseURL.
type OpenAIAPIAdapter struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIAPIAdapter creates an OpenAI API adapter.
func NewOpenAIAPIAdapter(config Config) (*OpenAIAPIAdapter, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	return &OpenAIAPIAdapter{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (a *OpenAIAPIAdapter) Name() string {
	return "openai-api"
}

func (a *OpenAIAPIAdapter) IsAvailable() bool {
	return os.Getenv("OPENAI_API_KEY") != ""
}

func (a *OpenAIAPIAdapter) Generate(ctx context.Context, systemPrompt, userPrompt string) (*core.DiscoveryResults, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens: a.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("openai API returned an empty response")
	}

	return parseJSONResponse(resp.Choices[0].Message.Content)
}
