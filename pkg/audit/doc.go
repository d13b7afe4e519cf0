// Package audit provides audit logging for edgeauth token operations.
//
// Events are written as RFC5424 syslog lines. Two event types exist:
//
//   - TokenIssuedEvent, logged when a token is signed
//   - TokenVerifiedEvent, logged for every verification attempt
//
// # Usage
//
//	audit.SetEnabled(cfg.AuditEnabled)
//	audit.Log(audit.TokenVerifiedEvent{ApplicationID: id, Code: result.Code})
//
// Audit logging is disabled until SetEnabled(true) is called.
package audit
