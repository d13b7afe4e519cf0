package builder

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/digest"
	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/token"
)

// ErrConfiguration is matched by errors for a builder that cannot sign.
var ErrConfiguration = errors.New("token builder is not configured")

var (
	ErrMissingApplicationID = fmt.Errorf("%w: applicationID must be set using the WithApplicationID method before calling Build", ErrConfiguration)
	ErrMissingSecret        = fmt.Errorf("%w: secret must be set using the WithSecret method before calling Build", ErrConfiguration)
)

// Builder is a helper type to create digest tokens.
type Builder struct {
	applicationID *string
	secret        *string
	payload       *token.Payload
	capabilities  map[string]struct{}
	now           func() time.Time
}

// New creates a new token builder.
func New() *Builder {
	return &Builder{
		payload: token.NewPayload(),
		now:     time.Now,
	}
}

// Value returns the payload assembled so far.
func (b *Builder) Value() *token.Payload {
	return b.payload
}

func (b *Builder) add(name string, value interface{}) *Builder {
	b.payload.Set(name, value)
	return b
}

func (b *Builder) addToArray(name string, value string) *Builder {
	if f, ok := b.payload.Get(name); ok {
		if values, check := f.([]string); check {
			b.payload.Set(name, append(values, value))
		}
		return b
	}
	return b.add(name, []string{value})
}

// WithApplicationID sets the application ID used to sign the token.
// (required)
func (b *Builder) WithApplicationID(applicationID string) *Builder {
	b.applicationID = &applicationID
	return b
}

// WithSecret sets the secret used to sign the token. (required)
func (b *Builder) WithSecret(secret string) *Builder {
	b.secret = &secret
	return b
}

// WithURI sets the backend URI. (optional)
func (b *Builder) WithURI(uri string) *Builder {
	return b.add(token.URIField, uri)
}

// WithCapability grants a capability, e.g. to publish a stream. Duplicates
// are ignored and the field always holds the capabilities in sorted order.
// (optional)
func (b *Builder) WithCapability(capability string) *Builder {
	if b.capabilities == nil {
		b.capabilities = make(map[string]struct{})
	}
	b.capabilities[capability] = struct{}{}

	sorted := make([]string, 0, len(b.capabilities))
	for c := range b.capabilities {
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)

	return b.add(token.CapabilitiesField, sorted)
}

// ExpiresInSeconds expires the token the given number of seconds from now.
// NOTE: the local clock must be in sync for expiration to work properly.
func (b *Builder) ExpiresInSeconds(seconds int) *Builder {
	return b.ExpiresAt(b.now().Add(time.Duration(seconds) * time.Second))
}

// ExpiresAt expires the token at the given time.
// NOTE: the local clock must be in sync for expiration to work properly.
func (b *Builder) ExpiresAt(expires time.Time) *Builder {
	return b.add(token.ExpiresField, expires.UnixMilli())
}

// ForAuthenticateOnly limits the token to authentication only. (optional)
func (b *Builder) ForAuthenticateOnly() *Builder {
	return b.ForType(token.TypeAuth)
}

// ForStreamingOnly limits the token to streaming only. (optional)
func (b *Builder) ForStreamingOnly() *Builder {
	return b.ForType(token.TypeStream)
}

// ForPublishingOnly limits the token to publishing only. (optional)
func (b *Builder) ForPublishingOnly() *Builder {
	return b.ForType(token.TypePublish)
}

// ForType limits the token to the given use. (optional)
func (b *Builder) ForType(t token.Type) *Builder {
	return b.add(token.TypeField, t.String())
}

// ForSession limits the token to the specified session ID. (optional)
func (b *Builder) ForSession(sessionID string) *Builder {
	return b.add(token.SessionIDField, sessionID)
}

// ForRemoteAddress limits the token to the specified remote address.
// (optional)
func (b *Builder) ForRemoteAddress(remoteAddress string) *Builder {
	return b.add(token.RemoteAddressField, remoteAddress)
}

// ForOriginStream limits the token to the specified origin stream ID.
// (optional)
func (b *Builder) ForOriginStream(originStreamID string) *Builder {
	return b.add(token.OriginStreamIDField, originStreamID)
}

// ForChannel limits the token to the specified channel ID. (optional)
func (b *Builder) ForChannel(channelID string) *Builder {
	return b.ForTag(token.ChannelIDTagPrefix + channelID)
}

// ForChannelAlias limits the token to the specified channel alias.
// (optional)
func (b *Builder) ForChannelAlias(channelAlias string) *Builder {
	return b.ForTag(token.ChannelAliasTagPrefix + channelAlias)
}

// ForRoom limits the token to the specified room ID. (optional)
func (b *Builder) ForRoom(roomID string) *Builder {
	return b.ForTag(token.RoomIDTagPrefix + roomID)
}

// ForRoomAlias limits the token to the specified room alias. (optional)
func (b *Builder) ForRoomAlias(roomAlias string) *Builder {
	return b.ForTag(token.RoomAliasTagPrefix + roomAlias)
}

// ForTag limits the token to origin streams carrying tag. (optional)
func (b *Builder) ForTag(tag string) *Builder {
	return b.add(token.RequiredTagField, tag)
}

// ApplyTag applies the tag to the stream when it is set up. (optional)
func (b *Builder) ApplyTag(tag string) *Builder {
	return b.addToArray(token.ApplyTagsField, tag)
}

// Build signs the payload and returns the digest token.
func (b *Builder) Build() (string, error) {
	if b.applicationID == nil {
		return "", ErrMissingApplicationID
	}
	if b.secret == nil {
		return "", ErrMissingSecret
	}

	return digest.SignAndEncode(*b.applicationID, *b.secret, b.payload)
}
