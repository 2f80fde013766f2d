package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, "auto", cfg.LLM.Provider)
	assert.Equal(t, 4096, cfg.LLM.MaxTokens)
	assert.Equal(t, 2*time.Minute, cfg.LLM.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Artwork.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Storage.Dir)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	writeFile(t, filepath.Join(dir, FileName), `
llm:
  provider: openai-api
  model: gpt-4o
  timeout: 30s
artwork:
  itunes_url: http://localhost:9999
profile:
  name: Ada
  email: ada@example.com
`)
	t.Setenv("LUMINA_LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LUMINA_LOG_LEVEL", "debug")

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, FileName, used)
	assert.Equal(t, "openai-api", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model, "env wins over file")
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "http://localhost:9999", cfg.Artwork.ITunesURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "Ada", cfg.Profile.Name)
}

func TestLoadExplicitPath(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "llm:\n  provider: ollama\n")

	cfg, used, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "llm:\n  provider: carrier-pigeon\n")

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Provider")
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"LUMINA_LLM_API_KEY":        "llm.api_key",
		"LUMINA_ARTWORK_ITUNES_URL": "artwork.itunes_url",
		"LUMINA_STORAGE_DIR":        "storage.dir",
		"LUMINA_METRICS_FILE":       "metrics.file",
		"LUMINA_VERBOSE":            "verbose",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestSaveLLMChoiceKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "profile:\n  name: Ada\nllm:\n  max_tokens: 2048\n")

	require.NoError(t, SaveLLMChoice(path, "anthropic-api", "claude-haiku-4-5-20251001"))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic-api", cfg.LLM.Provider)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.LLM.Model)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)
	assert.Equal(t, "Ada", cfg.Profile.Name)

	require.NoError(t, Remove(path))
	require.NoError(t, Remove(path))
}

func TestAdapterConfig(t *testing.T) {
	c := LLMConfig{Provider: "ollama", Model: "qwen2.5", BaseURL: "http://gpu:11434", Timeout: time.Minute}
	got := c.AdapterConfig()
	assert.Equal(t, "ollama", got.Provider)
	assert.Equal(t, "qwen2.5", got.Model)
	assert.Equal(t, "http://gpu:11434", got.BaseURL)
	assert.Equal(t, time.Minute, got.Timeout)
	assert.Equal(t, 4096, got.MaxTokens)
	assert.True(t, got.PreferCLI)
}
