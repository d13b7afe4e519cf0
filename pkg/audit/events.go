package audit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/digest"
)

// TokenIssuedEvent is logged when a digest token is signed
type TokenIssuedEvent struct {
	ApplicationID string
	Type          string
	Expires       time.Time
}

func (e TokenIssuedEvent) MessageID() string {
	return "token-issue"
}

func (e TokenIssuedEvent) Message() string {
	return fmt.Sprintf("issued token for application %s expiring at %s",
		e.ApplicationID, e.Expires.UTC().Format(time.RFC3339))
}

func (e TokenIssuedEvent) Severity() Severity {
	return SeverityInfo
}

func (e TokenIssuedEvent) Facility() int {
	return FacilityAuth
}

func (e TokenIssuedEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"application": e.ApplicationID,
		},
		SDIDToken: {
			"expires": strconv.FormatInt(e.Expires.UnixMilli(), 10),
		},
	}
	if e.Type != "" {
		sd[SDIDToken]["type"] = e.Type
	}
	return sd
}

// TokenVerifiedEvent is logged for every verification attempt, successful
// or not
type TokenVerifiedEvent struct {
	ApplicationID string
	Code          digest.Code
}

func (e TokenVerifiedEvent) MessageID() string {
	return "token-verify"
}

func (e TokenVerifiedEvent) Message() string {
	subject := e.ApplicationID
	if subject == "" {
		subject = "unknown application"
	}
	if e.Code == digest.CodeVerified {
		return fmt.Sprintf("verified token for %s", subject)
	}
	return fmt.Sprintf("failed to verify token for %s: %s", subject, e.Code)
}

func (e TokenVerifiedEvent) Severity() Severity {
	switch e.Code {
	case digest.CodeVerified:
		return SeverityInfo
	case digest.CodeServerError:
		return SeverityError
	}
	return SeverityWarning
}

func (e TokenVerifiedEvent) Facility() int {
	return FacilityAuthPriv
}

func (e TokenVerifiedEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDResult: {
			"code": string(e.Code),
		},
	}
	if e.ApplicationID != "" {
		sd[SDIDSubject] = map[string]string{"application": e.ApplicationID}
	}
	return sd
}
