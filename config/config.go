package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	LLM      LLMConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64
}

type RedisConfig struct {
	// URL empty means live events stay in-process and logout does not
	// blacklist tokens.
	URL string
}

type AuthConfig struct {
	JWTSecretKey    string
	JWTExpiration   time.Duration
	SessionDuration time.Duration
}

type LLMConfig struct {
	Provider   string
	OpenAIKey  string
	OpenAIBase string
	GeminiKey  string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// LoadEnv reads .env from the working directory. A missing file is only an
// error in production.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
	}
	return nil
}

// Load builds the configuration from the process environment.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	return FromViper(newViper()), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_EXPIRATION_TIME", 3600)
	v.SetDefault("SESSION_DURATION", 24*time.Hour)
	v.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("LLM_MODEL", "gpt-4.1-nano")
	v.SetDefault("LLM_MAX_TOKENS", 300)
	v.SetDefault("LLM_TIMEOUT", 60*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	setDatabaseDefaults(v)
	return v
}

// FromViper maps an already populated viper instance onto Config.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			GinMode:      v.GetString("GIN_MODE"),
			MaxBodyBytes: v.GetInt64("MAX_BODY_BYTES"),
		},
		Database: loadDatabaseConfig(v),
		Redis:    RedisConfig{URL: v.GetString("REDIS_URL")},
		Auth: AuthConfig{
			JWTSecretKey:    v.GetString("JWT_SECRET_KEY"),
			JWTExpiration:   time.Duration(v.GetInt("JWT_EXPIRATION_TIME")) * time.Second,
			SessionDuration: v.GetDuration("SESSION_DURATION"),
		},
		LLM: LLMConfig{
			Provider:   strings.ToLower(v.GetString("LLM_PROVIDER")),
			OpenAIKey:  v.GetString("OPENAI_API_KEY"),
			OpenAIBase: v.GetString("OPENAI_BASE_URL"),
			GeminiKey:  v.GetString("GEMINI_API_KEY"),
			Model:      v.GetString("LLM_MODEL"),
			MaxTokens:  v.GetInt("LLM_MAX_TOKENS"),
			Timeout:    v.GetDuration("LLM_TIMEOUT"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is not set"))
	}
	if c.Auth.JWTExpiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_TIME must be positive"))
	}
	switch c.Database.Driver {
	case DriverMongo, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Database.Driver))
	}
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is not set"))
		}
	case ProviderGemini:
		if c.LLM.GeminiKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider))
	}
	if c.LLM.MaxTokens <= 0 {
		errs = append(errs, errors.New("LLM_MAX_TOKENS must be positive"))
	}
	return errors.Join(errs...)
}
