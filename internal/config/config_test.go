package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expertsoft/softchat/internal/llm"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "CHAT_RATE_LIMIT", "CHAT_RATE_BURST", "CHAT_ENDPOINT",
		"KNOWLEDGE_BASE_PATH", "RETRIEVAL_TOP_K", "RETRIEVAL_THRESHOLD",
		"AI_PROVIDER", "AI_MODEL", "AI_TEMPERATURE", "AI_TOP_P", "AI_MAX_TOKENS", "AI_TIMEOUT_SECONDS",
		"GROQ_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "ARK_BASE_URL", "ARK_REGION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5.0, cfg.Server.RateLimit)
	assert.Equal(t, 10, cfg.Server.RateBurst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Knowledge.TopK)
	assert.Equal(t, 0.5, cfg.Knowledge.Threshold)
	assert.Empty(t, cfg.Knowledge.Path)
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, llm.DefaultBaseURL, cfg.AI.BaseURL)
	assert.Equal(t, llm.DefaultModel, cfg.AI.Model)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.False(t, cfg.AI.Enabled())
	assert.Equal(t, "http://localhost:8080/api/chat", cfg.Client.Endpoint)
}

func TestLoadPortForms(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "3000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Addr)

	t.Setenv("PORT", "127.0.0.1:3000")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Addr)

	t.Setenv("PORT", "30 00")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadGroqKeyEnablesOpenAIProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("AI_TEMPERATURE", "0.3")
	t.Setenv("AI_MAX_TOKENS", "256")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.AI.Enabled())
	assert.Equal(t, "gsk-test", cfg.AI.APIKey)
	require.NotNil(t, cfg.AI.Temperature)
	assert.Equal(t, 0.3, *cfg.AI.Temperature)
	require.NotNil(t, cfg.AI.MaxTokens)
	assert.Equal(t, 256, *cfg.AI.MaxTokens)
}

func TestLoadArkProviderNeedsModel(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "ark")
	t.Setenv("ARK_API_KEY", "ark-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.AI.Enabled())

	t.Setenv("AI_MODEL", "doubao-pro")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.AI.Enabled())
	assert.Equal(t, "cn-beijing", cfg.AI.Region)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"AI_PROVIDER":         "llama-cpp",
		"AI_TEMPERATURE":      "warm",
		"RETRIEVAL_TOP_K":     "five",
		"RETRIEVAL_THRESHOLD": "low",
		"CHAT_RATE_LIMIT":     "-1",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadClampsRetrievalTopK(t *testing.T) {
	clearEnv(t)
	t.Setenv("RETRIEVAL_TOP_K", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Knowledge.TopK)
}

func TestNewChatModelWithoutCredentials(t *testing.T) {
	_, err := AIConfig{Provider: ProviderOpenAI}.NewChatModel(t.Context())
	assert.Error(t, err)
}
