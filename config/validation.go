package config

import (
	"fmt"
	"strings"
)

// requiredValues must be present in every environment; the server
// refuses to start without them.
var requiredValues = []string{
	"DB_HOST",
	"DB_PORT",
	"DB_USER",
	"DB_PASSWORD",
	"DB_NAME",
	"JWT_SECRET",
}

// ValidateConfig checks that every required value resolved to
// something, either from the environment or from a Docker secret.
func ValidateConfig(cfg *Config) error {
	var missing []string
	for _, name := range requiredValues {
		if getValue(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if IsProduction() && cfg.RedisURL == "" && cfg.RedisHost == "" {
		return fmt.Errorf("redis configuration is required in production")
	}
	return nil
}
