package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Run("process environment", func(t *testing.T) {
		t.Setenv("HTTP_ADDR", ":9090")
		t.Setenv("SECRET_KEY", "env-secret")
		t.Setenv("TOKEN_VALIDITY_DURATION", "15m")
		t.Setenv("PASSWORD_HASH_COST", "11")
		t.Setenv("MAX_CONTENT_BYTES", "2048")
		t.Setenv("OPENAI_API_KEY", "sk-env")
		t.Setenv("LLM_MOCK", "true")

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseEnv(cfg, ""))

		assert.Equal(t, ":9090", cfg.HTTPAddr)
		assert.Equal(t, "env-secret", cfg.SecretKey)
		assert.Equal(t, 15*time.Minute, cfg.TokenValidityDuration)
		assert.Equal(t, 11, cfg.PasswordHashCost)
		assert.Equal(t, int64(2048), cfg.MaxContentBytes)
		assert.Equal(t, "sk-env", cfg.LLMAPIKey)
		assert.True(t, cfg.LLMMock)
		assert.Equal(t, ":50051", cfg.GRPCAddr, "unset variables keep their value")
	})

	t.Run("env file", func(t *testing.T) {
		path := writeTempFile(t, t.TempDir(), ".env", "RENDER_PROXY_URL=https://proxy.local/\nLLM_TIMEOUT=5s\n")

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseEnv(cfg, path))

		assert.Equal(t, "https://proxy.local/", cfg.RenderProxyURL)
		assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	})

	t.Run("environment beats env file", func(t *testing.T) {
		path := writeTempFile(t, t.TempDir(), ".env", "LOG_LEVEL=debug\n")
		t.Setenv("LOG_LEVEL", "error")

		cfg := &Config{}
		require.NoError(t, parseEnv(cfg, path))
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("missing env file is ignored", func(t *testing.T) {
		cfg := &Config{LogLevel: "info"}
		require.NoError(t, parseEnv(cfg, t.TempDir()+"/nope.env"))
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("malformed numbers", func(t *testing.T) {
		for key, value := range map[string]string{
			"PASSWORD_HASH_COST": "ten",
			"MAX_CONTENT_BYTES":  "lots",
			"LLM_MOCK":           "maybe",
			"REQUEST_TIMEOUT":    "soon",
		} {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, value)
				assert.Error(t, parseEnv(&Config{}, ""))
			})
		}
	})
}
