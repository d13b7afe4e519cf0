package digest

import (
	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/token"
)

// Code identifies the outcome of a verification.
type Code string

const (
	CodeVerified        Code = "verified"
	CodeNotADigestToken Code = "not-a-digest-token"
	CodeBadToken        Code = "bad-token"
	CodeBadDigest       Code = "bad-digest"
	CodeServerError     Code = "server-error"
)

func (c Code) String() string {
	return string(c)
}

// Result is the result of verifying and decoding a digest token.
//
// Message is only set for CodeServerError and Value only when Verified is
// true. Both are omitted from the JSON form otherwise.
type Result struct {
	Verified bool           `json:"verified"`
	Code     Code           `json:"code"`
	Message  string         `json:"message,omitempty"`
	Value    *token.Payload `json:"value,omitempty"`
}

// ApplicationID returns the application the token was signed for, or "" if
// the token was not verified.
func (r Result) ApplicationID() string {
	if !r.Verified || r.Value == nil {
		return ""
	}
	return r.Value.ApplicationID()
}

func notVerified(code Code) Result {
	return Result{
		Verified: false,
		Code:     code,
	}
}

func serverError(message string) Result {
	return Result{
		Verified: false,
		Code:     CodeServerError,
		Message:  message,
	}
}
