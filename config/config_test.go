package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionDuration)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "todos", cfg.Database.TodosCollection)
	assert.Equal(t, time.Minute, cfg.Database.MaxConnIdleTime)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("JWT_EXPIRATION_TIME", "120")
	t.Setenv("SESSION_DURATION", "2h")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/todos.db")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Auth.JWTExpiration)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionDuration)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/todos.db", cfg.Database.SQLitePath)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.NoError(t, cfg.Validate())
}

func TestValidateReportsEverything(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "postgres")
	v.Set("LLM_PROVIDER", "openai")
	cfg := FromViper(v)

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"JWT_SECRET_KEY is not set",
		"JWT_EXPIRATION_TIME must be positive",
		`unknown STORE_DRIVER "postgres"`,
		"OPENAI_API_KEY is not set",
		"LLM_MAX_TOKENS must be positive",
	} {
		assert.Contains(t, err.Error(), want)
	}
}
