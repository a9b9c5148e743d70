package explain

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigFromEnv_Disabled(t *testing.T) {
	cfg := ConfigFromEnv(env(nil))
	assert.False(t, cfg.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_Discovery(t *testing.T) {
	cfg := ConfigFromEnv(env(map[string]string{
		"ANTHROPIC_API_KEY": "a",
		"OPENAI_API_KEY":    "o",
	}))
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "o", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_Explicit(t *testing.T) {
	cfg := ConfigFromEnv(env(map[string]string{
		"QUIZZY_LLM_PROVIDER":      " Anthropic ",
		"QUIZZY_LLM_MODEL":         "claude-sonnet",
		"QUIZZY_LLM_BASE_URL":      "http://localhost:9999",
		"ANTHROPIC_API_KEY":        "std",
		"QUIZZY_ANTHROPIC_API_KEY": "override",
		"GEMINI_API_KEY":           "g",
	}))
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "override", cfg.Anthropic.APIKey)
	assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)
	assert.Equal(t, "http://localhost:9999", cfg.Anthropic.BaseURL)
	assert.Equal(t, "gemini-flash", cfg.Gemini.Model)
}

func TestConfig_Validate(t *testing.T) {
	cfg := ConfigFromEnv(env(map[string]string{"QUIZZY_LLM_PROVIDER": "gemini"}))
	assert.Error(t, cfg.Validate())

	cfg.Provider = "llama"
	assert.ErrorContains(t, cfg.Validate(), "unknown LLM provider")
}

func TestNewProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewProvider(context.Background(), DefaultConfig(), logger)
	assert.ErrorIs(t, err, ErrDisabled)

	cfg := DefaultConfig()
	cfg.Provider = ProviderStub
	p, err := NewProvider(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "stub", p.Model())

	cfg = ConfigFromEnv(env(map[string]string{"OPENROUTER_API_KEY": "r"}))
	p, err = NewProvider(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.0-flash-001", p.Model())
}
