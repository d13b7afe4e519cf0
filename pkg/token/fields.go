package token

// Field names for token data.
const (
	ApplicationIDField  = "applicationId"
	URIField            = "uri"
	ExpiresField        = "expires"
	CapabilitiesField   = "capabilities"
	RequiredTagField    = "requiredTag"
	TypeField           = "type"
	SessionIDField      = "sessionId"
	RemoteAddressField  = "remoteAddress"
	OriginStreamIDField = "originStreamId"
	ApplyTagsField      = "applyTags"
)

// Prefixes used to express channel and room scopes as required tags.
const (
	ChannelIDTagPrefix    = "channelId:"
	ChannelAliasTagPrefix = "channelAlias:"
	RoomIDTagPrefix       = "roomId:"
	RoomAliasTagPrefix    = "roomAlias:"
)
