package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

type ProviderConfig struct {
	APIKey  string `mapstructure:"apiKey"`
	BaseURL string `mapstructure:"baseURL"`
	Model   string `mapstructure:"model"`
	Version string `mapstructure:"version"`
}

type Config struct {
	Mode     string `mapstructure:"mode"`
	LogLevel string `mapstructure:"logLevel"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Enabled           bool   `mapstructure:"enabled"`
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"sslmode"`
			MAXCONWAITINGTIME int    `mapstructure:"maxConWaitingTime"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort        string        `mapstructure:"httpPort"`
		Timeout         time.Duration `mapstructure:"httpTimeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	} `mapstructure:"server"`
	Providers struct {
		Claude      ProviderConfig `mapstructure:"claude"`
		OpenAI      ProviderConfig `mapstructure:"openai"`
		Gemini      ProviderConfig `mapstructure:"gemini"`
		Temperature float64        `mapstructure:"temperature"`
	} `mapstructure:"providers"`
	Generation struct {
		MobileTimeout     time.Duration `mapstructure:"mobileTimeout"`
		StandardTimeout   time.Duration `mapstructure:"standardTimeout"`
		MobileMaxTokens   int           `mapstructure:"mobileMaxTokens"`
		StandardMaxTokens int           `mapstructure:"standardMaxTokens"`
		CacheDelay        time.Duration `mapstructure:"cacheDelay"`
	} `mapstructure:"generation"`
	Publish struct {
		Retention time.Duration `mapstructure:"retention"`
	} `mapstructure:"publish"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
}

// Production reports whether diagnostic detail must be withheld from callers.
func (c Config) Production() bool {
	return c.Mode == ModeProduction
}

// InitConfig loads config.yml from the usual locations, falling back to the embedded copy,
// then applies environment overrides. CONTENT_SERVER_HTTPPORT overrides server.httpPort;
// provider keys are read from their conventional names.
func InitConfig() (Config, error) {
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.SetConfigName("config")
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	return load(v)
}

// Load reads configuration from the given YAML only, plus the environment. Used by tests and the CLI.
func Load(yml []byte) (Config, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(yml)); err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return load(v)
}

// Embedded returns the built-in configuration document.
func Embedded() []byte {
	return embeddedConfig
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("CONTENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string][]string{
		"providers.claude.apiKey": {"ANTHROPIC_API_KEY", "CONTENT_PROVIDERS_CLAUDE_APIKEY"},
		"providers.openai.apiKey": {"OPENAI_API_KEY", "CONTENT_PROVIDERS_OPENAI_APIKEY"},
		"providers.gemini.apiKey": {"GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY", "CONTENT_PROVIDERS_GEMINI_APIKEY"},
		"mode":                    {"CONTENT_MODE", "APP_ENV"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	// Unknown keys are an error so stale settings do not linger unnoticed.
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", ModeDevelopment)
	v.SetDefault("logLevel", "info")
	v.SetDefault("server.httpPort", "8000")
	v.SetDefault("server.httpTimeout", 60*time.Second)
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("providers.temperature", 0.7)
	v.SetDefault("generation.mobileTimeout", 15*time.Second)
	v.SetDefault("generation.standardTimeout", 30*time.Second)
	v.SetDefault("generation.mobileMaxTokens", 500)
	v.SetDefault("generation.standardMaxTokens", 1500)
	v.SetDefault("generation.cacheDelay", 800*time.Millisecond)
	v.SetDefault("publish.retention", 24*time.Hour)
	v.SetDefault("cors.allowedOrigins", []string{"*"})
}

// validate rejects malformed settings. Missing provider keys are not an error here:
// they are reported at startup and fail only the requests that need them.
func (c Config) validate() error {
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		return fmt.Errorf("invalid mode %q: must be %s or %s", c.Mode, ModeDevelopment, ModeProduction)
	}
	if c.Generation.MobileTimeout <= 0 || c.Generation.StandardTimeout <= 0 {
		return fmt.Errorf("generation timeouts must be positive")
	}
	if c.Generation.MobileMaxTokens < 1 || c.Generation.StandardMaxTokens < 1 {
		return fmt.Errorf("generation token limits must be at least 1")
	}
	if c.Providers.Temperature < 0 || c.Providers.Temperature > 1 {
		return fmt.Errorf("providers.temperature must be between 0 and 1, got %v", c.Providers.Temperature)
	}
	if c.Repositories.Postgres.Enabled && c.Repositories.Postgres.Host == "" {
		return fmt.Errorf("repositories.postgres.host is required when the interaction log is enabled")
	}
	return nil
}
