package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis (optional; in-memory prediction cache is used when empty)
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	ValidAPIKeys []string `mapstructure:"VALID_API_KEYS"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Scout
	ScoutConfigPath string `mapstructure:"SCOUT_CONFIG_PATH"`
	DataDir         string `mapstructure:"DATA_DIR"`
	StaticDir       string `mapstructure:"STATIC_DIR"`

	// External schedule source
	FPLBaseURL              string        `mapstructure:"FPL_BASE_URL"`
	FixtureSourceCSV        string        `mapstructure:"FIXTURE_SOURCE_CSV"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	ExternalAPIRateLimit    int           `mapstructure:"EXTERNAL_API_RATE_LIMIT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Cache
	CacheExpiration int `mapstructure:"CACHE_EXPIRATION"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("VALID_API_KEYS", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("SCOUT_CONFIG_PATH", "config/config.yaml")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("STATIC_DIR", "static")
	viper.SetDefault("FPL_BASE_URL", "https://fantasy.premierleague.com/api")
	viper.SetDefault("FIXTURE_SOURCE_CSV", "")
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "10s")
	viper.SetDefault("EXTERNAL_API_RATE_LIMIT", 10)
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("CACHE_EXPIRATION", 3600)

	viper.AutomaticEnv()

	// .env file is optional; environment variables take over in production
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Viper reads env lists as comma-separated strings
	if keys := viper.GetString("VALID_API_KEYS"); keys != "" {
		cfg.ValidAPIKeys = splitAndTrim(keys)
	}
	if origins := viper.GetString("CORS_ORIGINS"); origins != "" {
		cfg.CorsOrigins = splitAndTrim(origins)
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
