// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DriverMemory keeps cafes in process memory instead of a SQL database.
const DriverMemory = "memory"

// Config holds every runtime setting of the service.
type Config struct {
	AppPort string

	DatabaseDriver   string
	DatabaseDSN      string
	DatabaseLogLevel string

	// RabbitMQURL is empty when event publishing is disabled.
	RabbitMQURL   string
	RabbitMQQueue string

	LogMode string
	LogFile string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "cafes.db")
	v.SetDefault("DATABASE_LOG_LEVEL", "warn")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "cafe_events")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("LOG_FILE", "")
}

// Load reads an optional .env file into the process environment, then
// resolves every key through v.
func Load(v *viper.Viper) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read .env file: %w", err)
	}

	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:          v.GetString("APP_PORT"),
		DatabaseDriver:   v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		DatabaseLogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:    v.GetString("RABBITMQ_QUEUE"),
		LogMode:          v.GetString("LOG_MODE"),
		LogFile:          v.GetString("LOG_FILE"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres", DriverMemory:
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER %q: want sqlite, postgres or memory", c.DatabaseDriver)
	}
	if c.DatabaseDriver != DriverMemory && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for driver %s", c.DatabaseDriver)
	}
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	if c.RabbitMQURL != "" && c.RabbitMQQueue == "" {
		return fmt.Errorf("RABBITMQ_QUEUE is required when RABBITMQ_URL is set")
	}
	return nil
}
