package digest

import (
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/token"
)

// Prefix is the prefix used for all digest tokens.
const Prefix = "DIGEST:"

// IsDigestToken reports whether candidate looks like a digest token.
func IsDigestToken(candidate string) bool {
	return candidate != "" && strings.HasPrefix(candidate, Prefix)
}

// CalculateDigest returns the base64 HMAC-SHA512 of serializedPayload. The
// key is applicationID immediately followed by secret.
func CalculateDigest(applicationID, secret, serializedPayload string) string {
	mac := hmac.New(sha512.New, []byte(applicationID+secret))
	mac.Write([]byte(serializedPayload))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignAndEncode signs payload for applicationID and returns the digest token.
// The payload is serialized in insertion order, so identical payloads built
// in the same order produce identical tokens.
func SignAndEncode(applicationID, secret string, payload *token.Payload) (string, error) {
	if err := validatePayload(payload); err != nil {
		return "", err
	}

	serialized, err := payload.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to serialize token payload: %w", err)
	}

	info := envelope{
		ApplicationID: applicationID,
		Digest:        CalculateDigest(applicationID, secret, string(serialized)),
		Token:         string(serialized),
	}

	encoded, err := info.encode()
	if err != nil {
		return "", fmt.Errorf("failed to encode digest token: %w", err)
	}
	return encoded, nil
}

// VerifyAndDecode verifies encodedToken against secret and decodes its
// payload. It never panics; every failure is reported in the Result.
func VerifyAndDecode(secret, encodedToken string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = serverError(fmt.Sprintf("%v", r))
		}
	}()

	if !IsDigestToken(encodedToken) {
		return notVerified(CodeNotADigestToken)
	}

	info, err := decodeEnvelope(encodedToken[len(Prefix):])
	if err != nil {
		return notVerified(CodeBadToken)
	}

	expected := CalculateDigest(info.ApplicationID, secret, info.Token)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(info.Digest)) != 1 {
		return notVerified(CodeBadDigest)
	}

	value, err := token.Parse([]byte(info.Token))
	if err != nil {
		return serverError(err.Error())
	}

	value.Set(token.ApplicationIDField, info.ApplicationID)

	return Result{
		Verified: true,
		Code:     CodeVerified,
		Value:    value,
	}
}

func validatePayload(payload *token.Payload) error {
	if payload == nil || payload.OrderedMap == nil {
		return &ValidationError{Message: "Token payload is required"}
	}
	if _, ok := payload.Number(token.ExpiresField); !ok {
		return &ValidationError{
			Field:   token.ExpiresField,
			Message: "Token must have an expiration (milliseconds since UNIX epoch)",
		}
	}
	if payload.Has(token.ApplicationIDField) {
		return &ValidationError{
			Field:   token.ApplicationIDField,
			Message: "Token should not have an application ID property",
		}
	}
	return nil
}
