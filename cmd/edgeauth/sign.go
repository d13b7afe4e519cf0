package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/audit"
	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/builder"
	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/config"
	applog "github.com/doodlesbykumbi/edgeauth-in-go/pkg/log"
	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/token"
)

// signCmd represents the sign command
var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a digest token",
	Long: `Sign a digest token and print it on stdout.

The application ID and secret default to the configured values. The token
expires --expires-in-seconds from now unless --expires-at (milliseconds since
the UNIX epoch) is given.

Example:
  edgeauth sign --streaming-only --channel-alias lobby
  edgeauth sign --publishing-only --channel-alias lobby --capabilities multi-bitrate,streaming
  edgeauth sign --authentication-only --expires-at 1735689600000 --show-payload`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
			os.Exit(1)
		}

		opts := signOptionsFromFlags(cmd, cfg)
		if err := runSign(os.Stdout, os.Stderr, cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(signCmd)
	addSignFlags(signCmd)
}

func addSignFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("application-id", "", "Application ID (defaults to configuration)")
	flags.String("secret", "", "Shared secret (defaults to configuration)")
	flags.String("uri", "", "Backend URI")
	flags.Int("expires-in-seconds", 0, "Token lifetime in seconds (defaults to configuration)")
	flags.Int64("expires-at", 0, "Absolute expiration in milliseconds since the UNIX epoch")
	flags.StringSlice("capabilities", nil, "Comma separated capabilities")
	flags.String("session-id", "", "Limit the token to a session")
	flags.String("remote-address", "", "Limit the token to a remote address")
	flags.String("origin-stream-id", "", "Limit the token to an origin stream")
	flags.String("channel", "", "Limit the token to a channel ID")
	flags.String("channel-alias", "", "Limit the token to a channel alias")
	flags.String("room", "", "Limit the token to a room ID")
	flags.String("room-alias", "", "Limit the token to a room alias")
	flags.String("tag", "", "Limit the token to streams carrying a tag")
	flags.StringArray("apply-tag", nil, "Tag applied to new streams (repeatable)")
	flags.Bool("authentication-only", false, "Token may only be used for authentication")
	flags.Bool("streaming-only", false, "Token may only be used for streaming")
	flags.Bool("publishing-only", false, "Token may only be used for publishing")
	flags.Bool("show-payload", false, "Print the signed payload on stderr")

	cmd.MarkFlagsMutuallyExclusive("authentication-only", "streaming-only", "publishing-only")
	cmd.MarkFlagsMutuallyExclusive("channel", "channel-alias", "room", "room-alias", "tag")
}

type signOptions struct {
	applicationID    string
	secret           string
	uri              string
	expiresInSeconds int
	expiresAt        int64
	expiresAtSet     bool
	capabilities     []string
	sessionID        string
	remoteAddress    string
	originStreamID   string
	channel          string
	channelAlias     string
	room             string
	roomAlias        string
	tag              string
	applyTags        []string
	tokenType        *token.Type
	showPayload      bool
}

func signOptionsFromFlags(cmd *cobra.Command, cfg *config.Config) signOptions {
	flags := cmd.Flags()

	opts := signOptions{}
	opts.applicationID, _ = flags.GetString("application-id")
	opts.secret, _ = flags.GetString("secret")
	opts.uri, _ = flags.GetString("uri")
	opts.expiresInSeconds, _ = flags.GetInt("expires-in-seconds")
	opts.expiresAt, _ = flags.GetInt64("expires-at")
	opts.expiresAtSet = flags.Changed("expires-at")
	opts.capabilities, _ = flags.GetStringSlice("capabilities")
	opts.sessionID, _ = flags.GetString("session-id")
	opts.remoteAddress, _ = flags.GetString("remote-address")
	opts.originStreamID, _ = flags.GetString("origin-stream-id")
	opts.channel, _ = flags.GetString("channel")
	opts.channelAlias, _ = flags.GetString("channel-alias")
	opts.room, _ = flags.GetString("room")
	opts.roomAlias, _ = flags.GetString("room-alias")
	opts.tag, _ = flags.GetString("tag")
	opts.applyTags, _ = flags.GetStringArray("apply-tag")
	opts.showPayload, _ = flags.GetBool("show-payload")

	for flag, typ := range map[string]token.Type{
		"authentication-only": token.TypeAuth,
		"streaming-only":      token.TypeStream,
		"publishing-only":     token.TypePublish,
	} {
		if set, _ := flags.GetBool(flag); set {
			t := typ
			opts.tokenType = &t
		}
	}

	if opts.applicationID == "" {
		opts.applicationID = cfg.ApplicationID
	}
	if opts.secret == "" {
		opts.secret = cfg.Secret
	}
	if opts.expiresInSeconds == 0 {
		opts.expiresInSeconds = cfg.ExpiresInSeconds
	}
	return opts
}

// newSignBuilder maps options onto a builder. Empty options are left out so
// the payload only carries what was asked for.
func newSignBuilder(opts signOptions) (*builder.Builder, error) {
	b := builder.New()
	if opts.applicationID != "" {
		b.WithApplicationID(opts.applicationID)
	}
	if opts.secret != "" {
		b.WithSecret(opts.secret)
	}
	if opts.uri != "" {
		b.WithURI(opts.uri)
	}

	switch {
	case opts.expiresAtSet:
		b.ExpiresAt(time.UnixMilli(opts.expiresAt))
	case opts.expiresInSeconds > 0:
		b.ExpiresInSeconds(opts.expiresInSeconds)
	default:
		return nil, errors.New("expires-in-seconds must be positive")
	}

	if opts.tokenType != nil {
		b.ForType(*opts.tokenType)
	}
	for _, capability := range opts.capabilities {
		if capability != "" {
			b.WithCapability(capability)
		}
	}
	if opts.sessionID != "" {
		b.ForSession(opts.sessionID)
	}
	if opts.remoteAddress != "" {
		b.ForRemoteAddress(opts.remoteAddress)
	}
	if opts.originStreamID != "" {
		b.ForOriginStream(opts.originStreamID)
	}

	switch {
	case opts.channel != "":
		b.ForChannel(opts.channel)
	case opts.channelAlias != "":
		b.ForChannelAlias(opts.channelAlias)
	case opts.room != "":
		b.ForRoom(opts.room)
	case opts.roomAlias != "":
		b.ForRoomAlias(opts.roomAlias)
	case opts.tag != "":
		b.ForTag(opts.tag)
	}

	for _, tag := range opts.applyTags {
		b.ApplyTag(tag)
	}
	return b, nil
}

func runSign(stdout, stderr io.Writer, cfg *config.Config, opts signOptions) error {
	logger := applog.WithComponent("sign")

	b, err := newSignBuilder(opts)
	if err != nil {
		return err
	}

	encoded, err := b.Build()
	if err != nil {
		return err
	}

	payload := b.Value()
	expires, _ := payload.Expires()
	event := audit.TokenIssuedEvent{
		ApplicationID: opts.applicationID,
		Expires:       expires,
	}
	if typ, ok := payload.Type(); ok {
		event.Type = typ.String()
	}
	audit.Log(event)

	logger.Debug().
		Str("application_id", opts.applicationID).
		Time("expires", expires).
		Int("fields", len(payload.Keys())).
		Msg("signed token")

	if opts.showPayload {
		raw, err := payload.Marshal()
		if err != nil {
			return fmt.Errorf("failed to serialize payload: %w", err)
		}
		fmt.Fprintf(stderr, "Payload: %s\n", raw)
	}

	fmt.Fprintln(stdout, encoded)
	return nil
}
