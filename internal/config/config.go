package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the runtime settings of the service.
type Config struct {
	AppPort             string
	DatabaseDriver      string
	DatabaseDSN         string
	RabbitMQURL         string
	RabbitMQQueue       string
	LogLevel            string
	LogFormat           string
	BcryptCost          int
	MessagesMaxPageSize int
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "chatroom.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "chat_events")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("MESSAGES_MAX_PAGE_SIZE", 1000)
	v.AutomaticEnv()

	cfg := Config{
		AppPort:             v.GetString("APP_PORT"),
		DatabaseDriver:      strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:       v.GetString("RABBITMQ_QUEUE"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           strings.ToLower(v.GetString("LOG_FORMAT")),
		BcryptCost:          v.GetInt("BCRYPT_COST"),
		MessagesMaxPageSize: v.GetInt("MESSAGES_MAX_PAGE_SIZE"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted sensibly.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.MessagesMaxPageSize <= 0 {
		return fmt.Errorf("MESSAGES_MAX_PAGE_SIZE must be positive, got %d", c.MessagesMaxPageSize)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}
