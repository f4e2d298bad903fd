package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads a YAML configuration file over DefaultConfig and expands
// environment references.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOrDefault loads configPath when it exists and falls back to
// DefaultConfig when it does not.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := substituteEnvVars(cfg); err != nil {
			return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
		}
		return cfg, nil
	}
	return Load(configPath)
}

// LoadFromViper decodes v over DefaultConfig, so keys absent from v keep
// their defaults.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR}, ${VAR:-default} and $VAR.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*)?\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// envFields lists the settings that may reference environment variables:
// credentials and paths that differ between machines.
func (c *Config) envFields() []*string {
	return []*string{
		&c.Source.Path,
		&c.Source.Table,
		&c.Source.MySQL.Host,
		&c.Source.MySQL.User,
		&c.Source.MySQL.Password,
		&c.Source.MySQL.Database,
		&c.Source.Postgres.URL,
		&c.Output.Dir,
		&c.Logging.Output,
	}
}

// substituteEnvVars expands environment references in every env field.
func substituteEnvVars(cfg *Config) error {
	for _, field := range cfg.envFields() {
		*field = expandEnvVar(*field)
	}
	return nil
}

// expandEnvVar expands ${VAR}, ${VAR:-default} and $VAR. Unset variables
// without a default are left as written so the validation error shows them.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, def := m[1], m[2]
		if name == "" {
			name = m[3]
		}
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if def != "" {
			return strings.TrimPrefix(def, ":-")
		}
		return match
	})
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, outputDir, input string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if outputDir != "" {
		c.Output.Dir = outputDir
	}
	if input != "" {
		c.Source.Type = "csv"
		c.Source.Path = input
	}
}
