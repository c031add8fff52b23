package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "LOG_LEVEL", "LLM_PROVIDER", "LLM_MODEL", "LLM_FALLBACK_MODELS",
		"OPENROUTER_API_KEY", "OPENROUTER_BASE_URL", "LLM_TIMEOUT",
		"READING_MAX_ATTEMPTS", "DECK_FILE", "CARD_ALIAS_FOLDING",
	} {
		t.Setenv(k, kv[k])
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"OPENROUTER_API_KEY": "k"})

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Equal(t, 30*time.Second, c.LLMTimeout)
	assert.Equal(t, 2, c.ReadingMaxAttempts)
	assert.False(t, c.CardAliasFolding)
	assert.Empty(t, c.LLMFallbackModels)
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"OPENROUTER_API_KEY":   "k",
		"LOG_LEVEL":            "DEBUG",
		"LLM_FALLBACK_MODELS":  " a, ,b ",
		"LLM_TIMEOUT":          "5s",
		"READING_MAX_ATTEMPTS": "4",
		"DECK_FILE":            "/etc/lunaria/deck.yaml",
		"CARD_ALIAS_FOLDING":   "true",
	})

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, []string{"a", "b"}, c.LLMFallbackModels)
	assert.Equal(t, 5*time.Second, c.LLMTimeout)
	assert.Equal(t, 4, c.ReadingMaxAttempts)
	assert.Equal(t, "/etc/lunaria/deck.yaml", c.DeckFile)
	assert.True(t, c.CardAliasFolding)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing key", map[string]string{}},
		{"bad timeout", map[string]string{"OPENROUTER_API_KEY": "k", "LLM_TIMEOUT": "soon"}},
		{"bad attempts", map[string]string{"OPENROUTER_API_KEY": "k", "READING_MAX_ATTEMPTS": "0"}},
		{"bad folding", map[string]string{"OPENROUTER_API_KEY": "k", "CARD_ALIAS_FOLDING": "maybe"}},
		{"bad level", map[string]string{"OPENROUTER_API_KEY": "k", "LOG_LEVEL": "loud"}},
		{"bad provider", map[string]string{"OPENROUTER_API_KEY": "k", "LLM_PROVIDER": "oracle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
