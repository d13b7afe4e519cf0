package digest

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"unicode/utf8"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/token"
)

// envelope is the signed wrapper that gets base64 framed into a digest token.
type envelope struct {
	ApplicationID string `json:"applicationId"`
	Digest        string `json:"digest"`
	Token         string `json:"token"`
}

// ErrMalformed indicates the framing or envelope JSON cannot be decoded.
var ErrMalformed = errors.New("malformed digest token")

// ErrInvalid indicates the envelope is missing required fields.
var ErrInvalid = errors.New("invalid digest token")

func (e envelope) encode() (string, error) {
	raw, err := token.MarshalCompact(e)
	if err != nil {
		return "", err
	}
	return Prefix + base64.StdEncoding.EncodeToString(raw), nil
}

// decodeEnvelope decodes the part of a digest token after the prefix.
func decodeEnvelope(encoded string) (*envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrMalformed
	}
	if !utf8.Valid(raw) {
		return nil, ErrMalformed
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, ErrMalformed
	}

	requiredFields := []string{env.ApplicationID, env.Digest, env.Token}
	for _, field := range requiredFields {
		if len(field) == 0 {
			return nil, ErrInvalid
		}
	}

	return &env, nil
}
