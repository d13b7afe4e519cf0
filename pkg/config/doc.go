// Package config provides configuration management for edgeauth.
//
// Configuration is resolved in layers, later layers winning:
//
//   - Built-in defaults
//   - $EDGEAUTH_CONFIG_PATH/edgeauth.yml (default /etc/edgeauth)
//   - A .env file in the working directory
//   - Environment variables
//
// # Key Configuration Options
//
//   - EDGEAUTH_APPLICATION_ID: Application ID used when signing
//   - EDGEAUTH_SECRET: Shared secret for signing and verification
//   - EDGEAUTH_EXPIRES_IN_SECONDS: Default token lifetime
//   - EDGEAUTH_LOG_LEVEL: Logging verbosity
//   - EDGEAUTH_AUDIT_ENABLED: Emit audit lines for token operations
package config
