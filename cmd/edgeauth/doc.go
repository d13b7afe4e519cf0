// Package main is the edgeauth command line tool.
//
// edgeauth signs and verifies digest tokens, the HMAC-signed tokens edge
// servers accept for authentication, streaming and publishing.
//
// # Quick Start
//
//	# Generate a shared secret
//	export EDGEAUTH_SECRET="$(edgeauth secret generate)"
//	export EDGEAUTH_APPLICATION_ID=my-application-id
//
//	# Sign a token for viewers of a channel
//	edgeauth sign --streaming-only --channel-alias lobby
//
//	# Verify it
//	edgeauth verify "DIGEST:..."
//
// # Environment Variables
//
//   - EDGEAUTH_CONFIG_PATH: Directory containing edgeauth.yml (default: /etc/edgeauth)
//   - EDGEAUTH_APPLICATION_ID: Application ID used when signing
//   - EDGEAUTH_SECRET: Shared secret
//   - EDGEAUTH_EXPIRES_IN_SECONDS: Default token lifetime (default: 3600)
//   - EDGEAUTH_LOG_LEVEL: Log level (debug, info, warn, error)
//   - EDGEAUTH_AUDIT_ENABLED: Write RFC5424 audit lines to stderr
package main
