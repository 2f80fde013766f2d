// Package config loads lumina's settings.
//
// Layers, lowest to highest: built-in defaults, the YAML file, then
// LUMINA_* environment variables. A .env file in the working directory is
// read into the environment first. Command-line flags are applied by the
// commands themselves, only when set explicitly.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/dhabedank/lumina/internal/llm"
)

// FileName is the config file looked up in the working and home directories.
const FileName = ".lumina.yaml"

// EnvPrefix prefixes every environment override, e.g. LUMINA_LLM_MODEL.
const EnvPrefix = "LUMINA_"

// Config is the full set of settings.
type Config struct {
	LLM     LLMConfig     `koanf:"llm"`
	Artwork ArtworkConfig `koanf:"artwork"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
	Profile ProfileConfig `koanf:"profile"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// LLMConfig selects and tunes the recommendation backend.
type LLMConfig struct {
	Provider  string        `koanf:"provider" validate:"oneof=auto anthropic-api openai-api ollama claude-cli codex-cli"`
	Model     string        `koanf:"model"`
	APIKey    string        `koanf:"api_key"` // Only used with an explicit provider
	BaseURL   string        `koanf:"base_url" validate:"omitempty,url"`
	MaxTokens int           `koanf:"max_tokens" validate:"min=256"`
	Timeout   time.Duration `koanf:"timeout" validate:"min=1s"`
}

// ArtworkConfig points the lookup clients at their services.
type ArtworkConfig struct {
	OpenLibraryURL string        `koanf:"open_library_url" validate:"omitempty,url"`
	CoversURL      string        `koanf:"covers_url" validate:"omitempty,url"`
	ITunesURL      string        `koanf:"itunes_url" validate:"omitempty,url"`
	Timeout        time.Duration `koanf:"timeout" validate:"min=1s"`
}

// StorageConfig locates the Badger directory.
type StorageConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// LogConfig mirrors logging.Config.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	File   string `koanf:"file"`
}

// ProfileConfig is the local identity used by sign-in.
type ProfileConfig struct {
	Name  string `koanf:"name"`
	Email string `koanf:"email" validate:"omitempty,email"`
}

// MetricsConfig controls the optional textfile export.
type MetricsConfig struct {
	File string `koanf:"file"`
}

// DataDir is where lumina keeps its store, log and markers.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lumina"
	}
	return filepath.Join(home, ".lumina")
}

// HomePath is the per-user config file written by setup.
func HomePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Default returns the built-in settings.
func Default() *Config {
	dataDir := DataDir()
	return &Config{
		LLM: LLMConfig{
			Provider:  "auto",
			MaxTokens: 4096,
			Timeout:   2 * time.Minute,
		},
		Artwork: ArtworkConfig{
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Dir: filepath.Join(dataDir, "store"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(dataDir, "lumina.log"),
		},
	}
}

// FindFile returns the config file to load: explicit if given, else
// ./.lumina.yaml, else ~/.lumina.yaml. Empty means none exists.
func FindFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if home := HomePath(); home != FileName {
		if _, err := os.Stat(home); err == nil {
			return home
		}
	}
	return ""
}

// Load builds the configuration. path may be empty to use FindFile's
// search. The second return value is the file actually read, if any.
func Load(path string) (*Config, string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, "", fmt.Errorf("load defaults: %w", err)
	}

	configPath := FindFile(path)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, "", fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, "", fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}

// envKey maps LUMINA_LLM_API_KEY to llm.api_key: the first segment after
// the prefix is the section, the rest is the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + key
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration: %s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// AdapterConfig converts the LLM section for llm.NewAdapter.
func (c LLMConfig) AdapterConfig() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = c.Provider
	cfg.Model = c.Model
	cfg.APIKey = c.APIKey
	cfg.BaseURL = c.BaseURL
	if c.MaxTokens > 0 {
		cfg.MaxTokens = c.MaxTokens
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	return cfg
}
