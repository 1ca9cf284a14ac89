package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("REDIS_ADDR", "redis:6380")
	os.Setenv("SESSION_TTL_SEC", "600")
	os.Setenv("INTERVIEW_TECHNICAL_QUESTIONS", "6")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("REDIS_ADDR")
		os.Unsetenv("SESSION_TTL_SEC")
		os.Unsetenv("INTERVIEW_TECHNICAL_QUESTIONS")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Interview.SessionTTL)
	assert.Equal(t, 6, cfg.Interview.TechnicalQuestions)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("SESSION_TTL_SEC")
	os.Unsetenv("CONVERSATION_TOKEN_BUDGET")
	os.Unsetenv("GEMINI_MODEL")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.Interview.SessionTTL)
	assert.Equal(t, 8000, cfg.Interview.TokenBudget)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 1, cfg.Interview.IntroQuestions)
	assert.Equal(t, 1, cfg.Interview.WrapUpQuestions)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
