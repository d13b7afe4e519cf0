// Package builder assembles token payloads and signs them into digest tokens.
//
// # Basic Usage
//
//	encoded, err := builder.New().
//	    WithApplicationID("my-application-id").
//	    WithSecret("my-secret").
//	    ExpiresInSeconds(3600).
//	    ForStreamingOnly().
//	    ForChannelAlias("lobby").
//	    WithCapability("multi-bitrate").
//	    Build()
//
// Fields are serialized in the order the methods are called, which makes the
// output deterministic for a fixed call sequence. Capabilities are kept as a
// sorted set regardless of the order they are added in.
package builder
