// Package config loads railplan's configuration with spf13/viper:
// defaults, an optional config file, RAILPLAN_-prefixed environment
// variables, and CLI flags bound by cmd, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full process configuration for the serve command.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Audit   AuditConfig   `mapstructure:"audit"`
}

// DataConfig locates the MSN/FLF/MCA feed triple.
type DataConfig struct {
	// Prefix is the shared path prefix of the three feed files, e.g.
	// "/var/lib/railplan/RJTTF748" for "RJTTF748.MSN" etc.
	Prefix string `mapstructure:"prefix"`
}

// ServerConfig configures the HTTP façade.
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	MetricsEnabled bool     `mapstructure:"metrics_enabled"`
}

// LoggingConfig configures the process-wide slog default logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuditConfig configures the optional journey-query audit sink.
// DSN empty disables it.
type AuditConfig struct {
	DSN string `mapstructure:"dsn"`
}

// Load builds a Config from defaults, an optional config.yaml, and
// RAILPLAN_-prefixed environment variables. v is the viper instance to
// layer onto; callers bind CLI flags onto it before calling Load so
// flags take precedence over everything else.
func Load(v *viper.Viper) (*Config, error) {
	v.SetDefault("data.prefix", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.metrics_enabled", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("audit.dsn", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("RAILPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Data.Prefix == "" {
		errs = append(errs, "data.prefix is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
