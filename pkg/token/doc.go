// Package token defines the claims carried inside an EdgeAuth digest token.
//
// A Payload is an insertion-ordered JSON object. The order in which fields
// are added is the order in which they are serialized, and the serialized
// bytes are what the digest covers, so two payloads built in the same order
// always sign to the same token.
//
// # Basic Usage
//
//	p := token.NewPayload()
//	p.Set(token.ExpiresField, time.Now().Add(time.Hour).UnixMilli())
//	p.Set(token.TypeField, token.TypeStream.String())
//
//	raw, err := p.Marshal()
//
// Verified payloads expose typed accessors for the well-known fields:
//
//	if p.Expired(time.Now()) {
//	    log.Fatal("token expired")
//	}
//	tag := p.RequiredTag()
package token
