package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Logging
	LogLevel  string
	LogPretty bool
}

// LoadConfig creates a new Config instance. Every value is read from
// the environment first and falls back to a Docker secret of the
// lower-cased name, so the same binary runs in CI (env only) and in
// production (secrets only).
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:    getValue("SERVER_PORT"),
		ServerHost:    getValue("SERVER_HOST"),
		DBHost:        getValue("DB_HOST"),
		DBPort:        getValue("DB_PORT"),
		DBUser:        getValue("DB_USER"),
		DBPassword:    getValue("DB_PASSWORD"),
		DBName:        getValue("DB_NAME"),
		DBSSLMode:     getValue("DB_SSL_MODE"),
		RedisHost:     getValue("REDIS_HOST"),
		RedisPort:     getValue("REDIS_PORT"),
		RedisPassword: getValue("REDIS_PASSWORD"),
		RedisURL:      getValue("REDIS_URL"),
		JWTSecret:     getValue("JWT_SECRET"),
		LogLevel:      getValue("LOG_LEVEL"),
	}

	if pretty := getValue("LOG_PRETTY"); pretty != "" {
		cfg.LogPretty, _ = strconv.ParseBool(pretty)
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	cfg.RedisDB = 0

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue reads a configuration value from the environment, falling
// back to a Docker secret with the lower-cased name.
func getValue(name string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return readSecret(strings.ToLower(name))
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
