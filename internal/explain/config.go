package explain

import (
	"fmt"
	"strings"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderStub       = "stub"
)

// Config selects and configures one provider.
type Config struct {
	// Provider is one of the Provider* names. Empty means disabled.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenAIConfig
	Gemini     GeminiConfig
	Retry      RetryConfig

	// Timeout bounds a single explanation including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string // default "claude-haiku"
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string // default "gemini-flash"
	BaseURL string
}

// DefaultConfig returns a disabled Config with default models.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenAIConfig{Model: "google/gemini-2.0-flash-001"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Retry:      DefaultRetryConfig(),
		Timeout:    20 * time.Second,
	}
}

// standardKeys is the discovery order used when no provider is named.
var standardKeys = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// ConfigFromEnv builds a Config from the environment. QUIZZY_LLM_PROVIDER
// names the provider explicitly; otherwise the first standard API key
// found picks one. QUIZZY_<PROVIDER>_API_KEY overrides the standard key.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := DefaultConfig()

	keys := make(map[string]string, len(standardKeys))
	for _, k := range standardKeys {
		key := getenv("QUIZZY_" + strings.ToUpper(k.provider) + "_API_KEY")
		if key == "" {
			key = getenv(k.env)
		}
		keys[k.provider] = key
	}
	cfg.Anthropic.APIKey = keys[ProviderAnthropic]
	cfg.OpenAI.APIKey = keys[ProviderOpenAI]
	cfg.OpenRouter.APIKey = keys[ProviderOpenRouter]
	cfg.Gemini.APIKey = keys[ProviderGemini]

	cfg.Provider = strings.ToLower(strings.TrimSpace(getenv("QUIZZY_LLM_PROVIDER")))
	if cfg.Provider == "" {
		for _, k := range standardKeys {
			if keys[k.provider] != "" {
				cfg.Provider = k.provider
				break
			}
		}
	}

	model := getenv("QUIZZY_LLM_MODEL")
	baseURL := getenv("QUIZZY_LLM_BASE_URL")
	switch cfg.Provider {
	case ProviderAnthropic:
		cfg.Anthropic.Model = or(model, cfg.Anthropic.Model)
		cfg.Anthropic.BaseURL = baseURL
	case ProviderOpenAI:
		cfg.OpenAI.Model = or(model, cfg.OpenAI.Model)
		cfg.OpenAI.BaseURL = baseURL
	case ProviderOpenRouter:
		cfg.OpenRouter.Model = or(model, cfg.OpenRouter.Model)
		cfg.OpenRouter.BaseURL = baseURL
	case ProviderGemini:
		cfg.Gemini.Model = or(model, cfg.Gemini.Model)
		cfg.Gemini.BaseURL = baseURL
	}
	return cfg
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool { return c.Provider != "" }

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "", ProviderStub:
		return nil
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider", c.Provider)
	}
	return nil
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
