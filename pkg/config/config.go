package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/edgeauth"
	ConfigFileName    = "edgeauth.yml"

	// EnvPrefix is prepended to every environment variable name.
	EnvPrefix = "EDGEAUTH_"

	DefaultExpiresInSeconds = 3600
	DefaultLogLevel         = "info"
)

// Config holds all edgeauth configuration settings
type Config struct {
	// ApplicationID is the application ID used to sign tokens
	ApplicationID string `yaml:"application_id" json:"application_id" env:"APPLICATION_ID"`

	// Secret is the shared secret used to sign and verify tokens
	Secret string `yaml:"secret" json:"-" env:"SECRET"`

	// ExpiresInSeconds is the default token lifetime
	ExpiresInSeconds int `yaml:"expires_in_seconds" json:"expires_in_seconds" env:"EXPIRES_IN_SECONDS"`

	// LogLevel is the zerolog level name
	LogLevel string `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`

	// AuditEnabled writes an audit line for every issued or verified token
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled" env:"AUDIT_ENABLED"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

var dotenvOnce sync.Once

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		ExpiresInSeconds: DefaultExpiresInSeconds,
		LogLevel:         DefaultLogLevel,
		AuditEnabled:     false,
		sources:          make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values. A .env file in
// the working directory is loaded first, without overriding variables that
// are already set.
func Load() (*Config, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv(EnvPrefix + "CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig fileAttributes
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"application_id", "secret", "expires_in_seconds", "log_level", "audit_enabled",
	}
}

// fileAttributes uses pointers so an explicit false or 0 in the file can be
// told apart from an absent key.
type fileAttributes struct {
	ApplicationID    *string `yaml:"application_id"`
	Secret           *string `yaml:"secret"`
	ExpiresInSeconds *int    `yaml:"expires_in_seconds"`
	LogLevel         *string `yaml:"log_level"`
	AuditEnabled     *bool   `yaml:"audit_enabled"`
}

func (c *Config) applyFileConfig(file *fileAttributes) {
	if file.ApplicationID != nil {
		c.ApplicationID = *file.ApplicationID
		c.sources["application_id"] = "file"
	}
	if file.Secret != nil {
		c.Secret = *file.Secret
		c.sources["secret"] = "file"
	}
	if file.ExpiresInSeconds != nil {
		c.ExpiresInSeconds = *file.ExpiresInSeconds
		c.sources["expires_in_seconds"] = "file"
	}
	if file.LogLevel != nil {
		c.LogLevel = *file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
}

func (c *Config) applyEnvConfig() error {
	return env.ParseWithOptions(c, env.Options{
		Prefix: EnvPrefix,
		OnSet: func(tag string, value interface{}, isDefault bool) {
			if isDefault {
				return
			}
			if s, ok := value.(string); ok && s == "" {
				return
			}
			name := strings.ToLower(strings.TrimPrefix(tag, EnvPrefix))
			c.sources[name] = "environment"
		},
	})
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the default token lifetime as a duration
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.ExpiresInSeconds) * time.Second
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ExpiresInSeconds <= 0 {
		return fmt.Errorf("invalid expires_in_seconds value: %d", c.ExpiresInSeconds)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level value: %s", c.LogLevel)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and
// sources. The secret value is never included.
func (c *Config) Attributes() []Attribute {
	secret := ""
	if c.Secret != "" {
		secret = "(redacted)"
	}
	return []Attribute{
		{Name: "application_id", Value: c.ApplicationID, Source: c.Source("application_id")},
		{Name: "secret", Value: secret, Source: c.Source("secret")},
		{Name: "expires_in_seconds", Value: strconv.Itoa(c.ExpiresInSeconds), Source: c.Source("expires_in_seconds")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
