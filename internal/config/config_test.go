package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "NATS_URL", "DEFAULT_LLM", "LLM_TIMEOUT",
		"MAX_UPLOAD_BYTES", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.ServerReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.ServerWriteTimeout)
	assert.Empty(t, cfg.NATSURL)
	assert.Equal(t, "openai", cfg.DefaultLLM)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 60, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_LLM", "anthropic")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "anthropic", cfg.DefaultLLM)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, 5, cfg.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "plenty")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")
	t.Setenv("MAX_UPLOAD_BYTES", "large")

	cfg := Load()
	assert.Equal(t, 60, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
}
