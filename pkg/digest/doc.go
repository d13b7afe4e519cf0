// Package digest signs and verifies EdgeAuth digest tokens.
//
// A digest token is the string "DIGEST:" followed by the standard base64
// encoding of a JSON envelope:
//
//	{"applicationId":"...","digest":"...","token":"..."}
//
// The token field holds the compact JSON serialization of the payload as a
// string. The digest is the base64 HMAC-SHA512 of those exact bytes, keyed
// with the application ID immediately followed by the shared secret.
//
// # Signing
//
// Signing fails fast. A payload without a numeric expires field, or one that
// already carries an applicationId, is rejected with a *ValidationError:
//
//	p := token.NewPayload()
//	p.Set(token.ExpiresField, time.Now().Add(time.Hour).UnixMilli())
//
//	encoded, err := digest.SignAndEncode("my-application-id", "my-secret", p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Verification
//
// Verification never fails with an error. Every outcome, including malformed
// input, is reported through the Result code:
//
//	result := digest.VerifyAndDecode("my-secret", encoded)
//	if !result.Verified {
//	    log.Printf("rejected: %s", result.Code)
//	}
//
//	appID := result.Value.ApplicationID()
//
// All functions are stateless and safe for concurrent use.
package digest
