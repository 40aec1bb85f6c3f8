package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.2"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	SMTP        SMTPConfig
	Engine      EngineConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// EngineConfig holds the workflow engine's operational parameters
type EngineConfig struct {
	// SweepInterval is how often due follow-ups are processed
	SweepInterval time.Duration
	// SweepBatchSize bounds how many due rows one sweep picks up
	SweepBatchSize int
	// SweepConcurrency bounds how many follow-ups run at once within a sweep
	SweepConcurrency int
	// ActionTimeout bounds every external call made by a single action
	ActionTimeout time.Duration
	// NotificationEmail receives notify_user action emails
	NotificationEmail string
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "leadpulse")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// SMTP defaults
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Leadpulse")

	// Engine defaults
	v.SetDefault("ENGINE_SWEEP_INTERVAL", "1m")
	v.SetDefault("ENGINE_SWEEP_BATCH_SIZE", 100)
	v.SetDefault("ENGINE_SWEEP_CONCURRENCY", 4)
	v.SetDefault("ENGINE_ACTION_TIMEOUT", "30s")

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	sweepInterval, err := time.ParseDuration(v.GetString("ENGINE_SWEEP_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_SWEEP_INTERVAL: %w", err)
	}
	actionTimeout, err := time.ParseDuration(v.GetString("ENGINE_ACTION_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_ACTION_TIMEOUT: %w", err)
	}

	sweepBatchSize := v.GetInt("ENGINE_SWEEP_BATCH_SIZE")
	if sweepBatchSize < 1 {
		return nil, fmt.Errorf("ENGINE_SWEEP_BATCH_SIZE must be at least 1")
	}
	sweepConcurrency := v.GetInt("ENGINE_SWEEP_CONCURRENCY")
	if sweepConcurrency < 1 {
		return nil, fmt.Errorf("ENGINE_SWEEP_CONCURRENCY must be at least 1")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		SMTP: SMTPConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			Username:  v.GetString("SMTP_USERNAME"),
			Password:  v.GetString("SMTP_PASSWORD"),
			FromEmail: v.GetString("SMTP_FROM_EMAIL"),
			FromName:  v.GetString("SMTP_FROM_NAME"),
		},
		Engine: EngineConfig{
			SweepInterval:     sweepInterval,
			SweepBatchSize:    sweepBatchSize,
			SweepConcurrency:  sweepConcurrency,
			ActionTimeout:     actionTimeout,
			NotificationEmail: v.GetString("ENGINE_NOTIFICATION_EMAIL"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	return cfg, nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
