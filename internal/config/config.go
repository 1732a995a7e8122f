package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported model providers.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

const (
	defaultGeminiModel = "gemini-3-pro-preview"
	defaultClaudeModel = "claude-sonnet-4-5-20250929"
)

// Config holds all application configuration.
type Config struct {
	Port            int           `yaml:"port"`
	APIKey          string        `yaml:"api_key"`
	Provider        string        `yaml:"provider"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	PromptPath      string        `yaml:"prompt_path"`
	PublicDir       string        `yaml:"public_dir"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
	MaxTokens       int           `yaml:"max_tokens"`
	LogFormat       string        `yaml:"log_format"`
	LogLevel        string        `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		Port:            6969,
		Provider:        ProviderGemini,
		PromptPath:      "prompt.txt",
		PublicDir:       "public",
		MaxBodyBytes:    1 << 20,
		UpstreamTimeout: 120 * time.Second,
		MaxTokens:       8192,
		LogFormat:       "text",
		LogLevel:        "info",
	}
}

// Load reads configuration from a YAML file (if path is non-empty),
// then applies environment variable overrides.
// The provider credential is read from KEY and the port from PORT.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("REWORD_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("REWORD_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("REWORD_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("REWORD_PROMPT_PATH"); v != "" {
		cfg.PromptPath = v
	}
	if v := os.Getenv("REWORD_PUBLIC_DIR"); v != "" {
		cfg.PublicDir = v
	}
	if v := os.Getenv("REWORD_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid REWORD_MAX_BODY_BYTES %q: %w", v, err)
		}
		cfg.MaxBodyBytes = n
	}
	if v := os.Getenv("REWORD_UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid REWORD_UPSTREAM_TIMEOUT %q: %w", v, err)
		}
		cfg.UpstreamTimeout = d
	}
	if v := os.Getenv("REWORD_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid REWORD_MAX_TOKENS %q: %w", v, err)
		}
		cfg.MaxTokens = n
	}
	if v := os.Getenv("REWORD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("REWORD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return cfg, nil
}

// Validate reports the first configuration problem that must stop startup.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("config: max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("config: upstream_timeout must not be negative, got %s", c.UpstreamTimeout)
	}

	switch c.Provider {
	case ProviderGemini, ProviderClaude:
		if c.APIKey == "" {
			return errors.New("config: missing KEY (model provider credential)")
		}
	case ProviderOpenAI:
		if c.BaseURL == "" {
			return errors.New("config: provider openai requires base_url")
		}
		if c.Model == "" {
			return errors.New("config: provider openai requires model")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log_format %q", c.LogFormat)
	}
	return nil
}

// ModelName returns the configured model, falling back to the provider default.
func (c Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderGemini:
		return defaultGeminiModel
	case ProviderClaude:
		return defaultClaudeModel
	case ProviderMock:
		return "mock"
	}
	return ""
}

// LoadSystemPrompt reads the system instruction file. Surrounding whitespace is trimmed.
func LoadSystemPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("prompt: read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
