package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the process configuration.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	DatabaseDriver string // "postgres" or "sqlite"
	DatabaseDSN    string

	JWTSecret  string
	JWTExpire  time.Duration
	BcryptCost int

	CORSOrigins string

	RabbitMQURL      string
	RabbitMQExchange string

	RedisURL       string
	AuthRateLimit  int
	AuthRateWindow time.Duration

	SentryDSN        string
	SentrySampleRate float64
}

// Load reads configuration from defaults, an optional file named by
// CONFIG_FILE, and the environment, in increasing priority.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom is Load on a caller-supplied viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		AppPort:          v.GetString("APP_PORT"),
		AppEnv:           v.GetString("APP_ENV"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		DatabaseDriver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTExpire:        v.GetDuration("JWT_EXPIRE"),
		BcryptCost:       v.GetInt("BCRYPT_COST"),
		CORSOrigins:      v.GetString("CORS_ORIGINS"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		RedisURL:         v.GetString("REDIS_URL"),
		AuthRateLimit:    v.GetInt("AUTH_RATE_LIMIT"),
		AuthRateWindow:   v.GetDuration("AUTH_RATE_WINDOW"),
		SentryDSN:        v.GetString("SENTRY_DSN"),
		SentrySampleRate: v.GetFloat64("SENTRY_TRACES_SAMPLE_RATE"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=talenthub port=5432 sslmode=disable TimeZone=UTC")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRE", "168h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "talenthub.events")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("AUTH_RATE_LIMIT", 10)
	v.SetDefault("AUTH_RATE_WINDOW", "1m")
	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("SENTRY_TRACES_SAMPLE_RATE", 0.2)
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres or sqlite)", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.JWTExpire <= 0 {
		return fmt.Errorf("JWT_EXPIRE must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
