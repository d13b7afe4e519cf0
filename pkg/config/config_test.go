package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"APPLICATION_ID", "SECRET", "EXPIRES_IN_SECONDS", "LOG_LEVEL", "AUDIT_ENABLED", "CONFIG_PATH",
	} {
		t.Setenv(EnvPrefix+name, "")
	}
	t.Setenv(EnvPrefix+"CONFIG_PATH", t.TempDir())
}

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))
	t.Setenv(EnvPrefix+"CONFIG_PATH", dir)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.ApplicationID)
	assert.Empty(t, cfg.Secret)
	assert.Equal(t, DefaultExpiresInSeconds, cfg.ExpiresInSeconds)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.AuditEnabled)
	assert.Equal(t, time.Hour, cfg.TokenTTL())
	assert.Equal(t, "default", cfg.Source("secret"))
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	writeConfigFile(t, `
application_id: my-application-id
secret: my-secret
expires_in_seconds: 60
audit_enabled: true
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "my-application-id", cfg.ApplicationID)
	assert.Equal(t, "my-secret", cfg.Secret)
	assert.Equal(t, 60, cfg.ExpiresInSeconds)
	assert.True(t, cfg.AuditEnabled)
	assert.Equal(t, "file", cfg.Source("application_id"))
	assert.Equal(t, "file", cfg.Source("audit_enabled"))
	assert.Equal(t, "default", cfg.Source("log_level"))
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	writeConfigFile(t, "application_id: from-file\nexpires_in_seconds: 60\n")
	t.Setenv(EnvPrefix+"APPLICATION_ID", "from-env")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.ApplicationID)
	assert.Equal(t, "environment", cfg.Source("application_id"))
	assert.Equal(t, 60, cfg.ExpiresInSeconds)
	assert.Equal(t, "file", cfg.Source("expires_in_seconds"))
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "environment", cfg.Source("log_level"))
}

func TestLoad_InvalidFile(t *testing.T) {
	clearEnv(t)
	writeConfigFile(t, "expires_in_seconds: [not, a, number]\n")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"EXPIRES_IN_SECONDS", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "zero lifetime", modify: func(c *Config) { c.ExpiresInSeconds = 0 }, wantErr: true},
		{name: "negative lifetime", modify: func(c *Config) { c.ExpiresInSeconds = -5 }, wantErr: true},
		{name: "unknown log level", modify: func(c *Config) { c.LogLevel = "chatty" }, wantErr: true},
		{name: "warn log level", modify: func(c *Config) { c.LogLevel = "warn" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.modify(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestAttributes_RedactSecret(t *testing.T) {
	cfg := newDefault()
	cfg.Secret = "my-secret"

	text := cfg.FormatText()
	assert.NotContains(t, text, "my-secret")
	assert.Contains(t, text, "(redacted)")

	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	assert.NotContains(t, out, "my-secret")

	var decoded struct {
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Attributes, 5)
	assert.Equal(t, "secret", decoded.Attributes[1].Name)
	assert.Equal(t, "(redacted)", decoded.Attributes[1].Value)
}

func TestFormatText_NotSet(t *testing.T) {
	cfg := newDefault()
	assert.Contains(t, cfg.FormatText(), "(not set)")
}
