package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/lumina/internal/core"
)

const bundleJSON = `{
  "books": [
    {"title": "Piranesi", "author": "Susanna Clarke", "genres": ["Fantasy"], "description": "d", "reason": "r"},
    {"title": "The Night Circus", "author": "Erin Morgenstern", "genres": ["Fantasy"], "description": "d", "reason": "r"},
    {"title": "Uprooted", "author": "Naomi Novik", "genres": ["Fantasy"], "description": "d", "reason": "r"},
    {"title": "The Buried Giant", "author": "Kazuo Ishiguro", "genres": ["Fantasy"], "description": "d", "reason": "r"}
  ],
  "movies": [
    {"title": "Spirited Away", "year": "2001", "type": "Movie", "genres": ["Animation"], "description": "d", "reason": "r"},
    {"title": "Arcane", "year": "2021", "type": "Series", "genres": ["Fantasy"], "description": "d", "reason": "r"}
  ]
}`

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if !config.PreferCLI {
		t.Error("PreferCLI should be true by default")
	}
	if config.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", config.MaxTokens)
	}
	if config.Provider != "auto" {
		t.Errorf("Provider = %q, want auto", config.Provider)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"surrounding prose", "Here you go:\n{\"a\":1}\nEnjoy!", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"claude wrapper", `{"type":"result","result":"{\"a\":1}","is_error":false}`, `{"a":1}`},
		{"claude error wrapper", `{"type":"result","result":"rate limited","is_error":true}`, ""},
		{"no object", "I cannot help with that.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.output); got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	results, err := parseJSONResponse("```json\n" + bundleJSON + "\n```")
	require.NoError(t, err)
	assert.Len(t, results.Books, 4)
	assert.Equal(t, core.MediaSeries, results.Movies[1].Type)

	_, err = parseJSONResponse("no json here")
	assert.Error(t, err)

	_, err = parseJSONResponse(`{"books": [}`)
	assert.Error(t, err)

	_, err = parseJSONResponse(`{"books": [], "movies": []}`)
	var verr *core.ValidationError
	assert.True(t, errors.As(err, &verr), "schema violations surface as ValidationError, got %v", err)
}

func TestAdapterNames(t *testing.T) {
	if name := NewClaudeCLIAdapter(Config{}).Name(); name != "claude-cli" {
		t.Errorf("Name() = %s, want claude-cli", name)
	}
	if name := NewCodexCLIAdapter(Config{}).Name(); name != "codex-cli" {
		t.Errorf("Name() = %s, want codex-cli", name)
	}

	anthropic, err := NewAnthropicAPIAdapter(Config{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic-api", anthropic.Name())

	ollama, err := NewOllamaAdapter(Config{BaseURL: "http://127.0.0.1:1/v1"})
	require.NoError(t, err)
	assert.Equal(t, "ollama", ollama.Name())
	assert.Equal(t, "http://127.0.0.1:1", ollama.baseURL)
}

func TestNewAdapterUnknownProvider(t *testing.T) {
	_, err := NewAdapter(Config{Provider: "carrier-pigeon"})
	assert.ErrorContains(t, err, "unknown LLM provider")
}

func TestDetectIgnoresConfiguredKey(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	adapter, err := NewAdapter(Config{Provider: "auto", PreferCLI: true, APIKey: "sk-configured"})
	require.NoError(t, err)
	assert.Equal(t, "openai-api", adapter.Name(), "a configured key must not make the Anthropic adapter look available")

	explicit, err := NewAdapter(Config{Provider: "anthropic-api", APIKey: "sk-configured"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic-api", explicit.Name())
}

func TestOpenAIAPIAdapterRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewOpenAIAPIAdapter(Config{})
	assert.Error(t, err)
}

func TestOpenAIAPIAdapterGenerate(t *testing.T) {
	var req struct {
		Model          string `json:"model"`
		ResponseFormat struct {
			Type string `json:"type"`
		} `json:"response_format"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &req))

		content, _ := json.Marshal(bundleJSON)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"c1","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":%s},"finish_reason":"stop"}]}`, content)
	}))
	defer srv.Close()

	adapter, err := NewOpenAIAPIAdapter(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	results, err := adapter.Generate(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, "Piranesi", results.Books[0].Title)

	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, "json_object", req.ResponseFormat.Type)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "user", req.Messages[1].Content)
}

func TestOllamaAdapterGenerate(t *testing.T) {
	var req struct {
		Model  string          `json:"model"`
		Format json.RawMessage `json:"format"`
		Stream *bool           `json:"stream"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &req))

		resp := map[string]any{
			"model":   "llama3.1",
			"message": map[string]string{"role": "assistant", "content": bundleJSON},
			"done":    true,
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	adapter, err := NewOllamaAdapter(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	results, err := adapter.Generate(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Len(t, results.Movies, 2)

	assert.Equal(t, "llama3.1", req.Model)
	assert.Equal(t, `"json"`, strings.TrimSpace(string(req.Format)))
	require.NotNil(t, req.Stream)
	assert.False(t, *req.Stream)
}

type flakyAdapter struct {
	err   error
	calls int
}

func (f *flakyAdapter) Name() string      { return "flaky" }
func (f *flakyAdapter) IsAvailable() bool { return true }
func (f *flakyAdapter) Generate(context.Context, string, string) (*core.DiscoveryResults, error) {
	f.calls++
	return nil, f.err
}

func TestGuardOpensAfterThreeFailures(t *testing.T) {
	inner := &flakyAdapter{err: errors.New("503 from upstream")}
	guarded := Guard(inner, zerolog.Nop())

	for i := 0; i < 3; i++ {
		_, err := guarded.Generate(context.Background(), "s", "u")
		assert.ErrorIs(t, err, inner.err)
	}

	_, err := guarded.Generate(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 3, inner.calls, "no call reaches the adapter while open, and nothing is retried")
}

func TestGuardIgnoresCancellation(t *testing.T) {
	inner := &flakyAdapter{err: context.Canceled}
	guarded := Guard(inner, zerolog.Nop())

	for i := 0; i < 5; i++ {
		_, err := guarded.Generate(context.Background(), "s", "u")
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, 5, inner.calls)
}
