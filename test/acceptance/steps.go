// Package acceptance holds the godog feature suite for digest tokens.
package acceptance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/builder"
	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/digest"
	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/token"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	builder *builder.Builder
	token   *string
	secret  string
	result  *digest.Result
}

// NewStepsContext creates a new steps context
func NewStepsContext() *StepsContext {
	return &StepsContext{}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*s = StepsContext{}
		return ctx, nil
	})

	// Token setup steps
	sc.Step(`^I have a bad token$`, s.iHaveABadToken)
	sc.Step(`^I have the token "([^"]*)"$`, s.iHaveTheToken)
	sc.Step(`^I have a good token$`, s.iHaveAGoodToken)
	sc.Step(`^I have a good token with URI "([^"]*)"$`, s.iHaveAGoodTokenWithURI)
	sc.Step(`^The token is for a channel "([^"]*)"$`, s.theTokenIsForAChannel)
	sc.Step(`^The token is for a channel alias "([^"]*)"$`, s.theTokenIsForAChannelAlias)
	sc.Step(`^The token is for a room "([^"]*)"$`, s.theTokenIsForARoom)
	sc.Step(`^The token is for a room alias "([^"]*)"$`, s.theTokenIsForARoomAlias)
	sc.Step(`^The token is for a remote address "([^"]*)"$`, s.theTokenIsForARemoteAddress)
	sc.Step(`^The token is for a session "([^"]*)"$`, s.theTokenIsForASession)
	sc.Step(`^The token is for tag "([^"]*)"$`, s.theTokenIsForTag)
	sc.Step(`^The token has a "([^"]*)" tag applied$`, s.theTokenHasATagApplied)
	sc.Step(`^The token is for streaming only$`, s.theTokenIsForStreamingOnly)
	sc.Step(`^The token is for publishing only$`, s.theTokenIsForPublishingOnly)
	sc.Step(`^The token has capability "([^"]*)"$`, s.theTokenHasCapability)

	// Verification steps
	sc.Step(`^The correct token is "([^"]*)"$`, s.theCorrectTokenIs)
	sc.Step(`^I try to verify a token with a good secret$`, s.iTryToVerifyWithSecret("my-secret"))
	sc.Step(`^I try to verify a token with a bad secret$`, s.iTryToVerifyWithSecret("bad-secret"))
	sc.Step(`^Verification should fail with error "([^"]*)"$`, s.verificationShouldFailWithError)
	sc.Step(`^Verification should pass$`, s.verificationShouldPass)

	// Field steps
	sc.Step(`^The application ID field should be "([^"]*)"$`, s.fieldShouldBe(token.ApplicationIDField))
	sc.Step(`^The tag field should be "([^"]*)"$`, s.fieldShouldBe(token.RequiredTagField))
	sc.Step(`^The remote address field should be "([^"]*)"$`, s.fieldShouldBe(token.RemoteAddressField))
	sc.Step(`^The session field should be "([^"]*)"$`, s.fieldShouldBe(token.SessionIDField))
	sc.Step(`^The URI field should be "([^"]*)"$`, s.fieldShouldBe(token.URIField))
	sc.Step(`^The type field should be "([^"]*)"$`, s.fieldShouldBe(token.TypeField))
	sc.Step(`^The applied tags field should be "([^"]*)"$`, s.arrayFieldShouldBe(token.ApplyTagsField))
	sc.Step(`^The capabilities field should be "([^"]*)"$`, s.arrayFieldShouldBe(token.CapabilitiesField))
}

func (s *StepsContext) iHaveABadToken() error {
	bad := "DIGEST:bad-token"
	s.token = &bad
	return nil
}

func (s *StepsContext) iHaveTheToken(encoded string) error {
	s.token = &encoded
	return nil
}

func (s *StepsContext) iHaveAGoodToken() error {
	s.builder = builder.New().
		WithApplicationID("my-application-id").
		WithSecret("my-secret").
		ExpiresAt(time.UnixMilli(1000))
	return nil
}

func (s *StepsContext) iHaveAGoodTokenWithURI(uri string) error {
	s.builder = builder.New().
		WithApplicationID("my-application-id").
		WithSecret("my-secret").
		WithURI(uri).
		ExpiresAt(time.UnixMilli(1000))
	return nil
}

func (s *StepsContext) withBuilder(apply func(*builder.Builder)) error {
	if s.builder == nil {
		return fmt.Errorf("no token is being built")
	}
	apply(s.builder)
	return nil
}

func (s *StepsContext) theTokenIsForAChannel(channelID string) error {
	return s.withBuilder(func(b *builder.Builder) { b.ForChannel(channelID) })
}

func (s *StepsContext) theTokenIsForAChannelAlias(channelAlias string) error {
	return s.withBuilder(func(b *builder.Builder) { b.ForChannelAlias(channelAlias) })
}

func (s *StepsContext) theTokenIsForARoom(roomID string) error {
	return s.withBuilder(func(b *builder.Builder) { b.ForRoom(roomID) })
}

func (s *StepsContext) theTokenIsForARoomAlias(roomAlias string) error {
	return s.withBuilder(func(b *builder.Builder) { b.ForRoomAlias(roomAlias) })
}

func (s *StepsContext) theTokenIsForARemoteAddress(remoteAddress string) error {
	return s.withBuilder(func(b *builder.Builder) { b.ForRemoteAddress(remoteAddress) })
}

func (s *StepsContext) theTokenIsForASession(sessionID string) error {
	return s.withBuilder(func(b *builder.Builder) { b.ForSession(sessionID) })
}

func (s *StepsContext) theTokenIsForTag(tag string) error {
	return s.withBuilder(func(b *builder.Builder) { b.ForTag(tag) })
}

func (s *StepsContext) theTokenHasATagApplied(tag string) error {
	return s.withBuilder(func(b *builder.Builder) { b.ApplyTag(tag) })
}

func (s *StepsContext) theTokenIsForStreamingOnly() error {
	return s.withBuilder(func(b *builder.Builder) { b.ForStreamingOnly() })
}

func (s *StepsContext) theTokenIsForPublishingOnly() error {
	return s.withBuilder(func(b *builder.Builder) { b.ForPublishingOnly() })
}

func (s *StepsContext) theTokenHasCapability(capability string) error {
	return s.withBuilder(func(b *builder.Builder) { b.WithCapability(capability) })
}

// buildToken signs the builder once, the first time a token is needed.
func (s *StepsContext) buildToken() error {
	if s.token != nil {
		return nil
	}
	if s.builder == nil {
		return fmt.Errorf("no token is being built")
	}
	encoded, err := s.builder.Build()
	if err != nil {
		return fmt.Errorf("token builder failed: %w", err)
	}
	s.token = &encoded
	return nil
}

func (s *StepsContext) theCorrectTokenIs(expected string) error {
	if err := s.buildToken(); err != nil {
		return err
	}
	if *s.token != expected {
		return fmt.Errorf("expected token %s, got %s", expected, *s.token)
	}
	return nil
}

func (s *StepsContext) iTryToVerifyWithSecret(secret string) func() error {
	return func() error {
		s.secret = secret
		return nil
	}
}

func (s *StepsContext) verify() error {
	if err := s.buildToken(); err != nil {
		return err
	}
	result := digest.VerifyAndDecode(s.secret, *s.token)
	s.result = &result
	return nil
}

func (s *StepsContext) verificationShouldFailWithError(code string) error {
	if err := s.verify(); err != nil {
		return err
	}
	if s.result.Verified {
		return fmt.Errorf("token did not fail to verify")
	}
	if string(s.result.Code) != code {
		return fmt.Errorf("result code should be %q, but is %q", code, s.result.Code)
	}
	if s.result.Message != "" {
		return fmt.Errorf("result message should be empty, but is %q", s.result.Message)
	}
	if s.result.Value != nil {
		return fmt.Errorf("result value should be nil")
	}
	return nil
}

func (s *StepsContext) verificationShouldPass() error {
	if err := s.verify(); err != nil {
		return err
	}
	if !s.result.Verified {
		return fmt.Errorf("token failed to verify: %s", s.result.Code)
	}
	if s.result.Code != digest.CodeVerified {
		return fmt.Errorf("result code should be %q, but is %q", digest.CodeVerified, s.result.Code)
	}
	if s.result.Value == nil {
		return fmt.Errorf("result value is nil")
	}
	return nil
}

func (s *StepsContext) verifiedValue() (*token.Payload, error) {
	if s.result == nil || s.result.Value == nil {
		return nil, fmt.Errorf("the verification value is not set")
	}
	return s.result.Value, nil
}

func (s *StepsContext) fieldShouldBe(field string) func(string) error {
	return func(expected string) error {
		value, err := s.verifiedValue()
		if err != nil {
			return err
		}
		if !value.Has(field) || value.StringField(field) != expected {
			return fmt.Errorf("%s should be %q, but is %q", field, expected, value.StringField(field))
		}
		return nil
	}
}

func (s *StepsContext) arrayFieldShouldBe(field string) func(string) error {
	return func(expected string) error {
		value, err := s.verifiedValue()
		if err != nil {
			return err
		}
		actual := strings.Join(value.StringsField(field), ",")
		if !value.Has(field) || actual != expected {
			return fmt.Errorf("%s should be %q, but is %q", field, expected, actual)
		}
		return nil
	}
}
