package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Run("missing JWT_SECRET", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("OPENAI_API_KEY", "test-key")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing OPENAI_API_KEY", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("OPENAI_API_KEY", "")

		_, err := Load()
		assert.Error(t, err)
	})
}
