package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/iancoleman/orderedmap"
)

// ErrNotAnObject indicates serialized claims that are not a JSON object.
var ErrNotAnObject = errors.New("token payload is not a JSON object")

// Payload represents the fields in a token, maintaining the order that
// fields are added.
type Payload struct {
	*orderedmap.OrderedMap
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return &Payload{m}
}

// Parse decodes serialized claims, keeping the key order of the input.
func Parse(raw []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotAnObject
	}

	p := NewPayload()
	if err := json.Unmarshal(trimmed, p.OrderedMap); err != nil {
		return nil, err
	}
	return p, nil
}

// Marshal returns the compact serialization of the payload. Keys appear in
// insertion order and HTML characters are left unescaped.
func (p *Payload) Marshal() ([]byte, error) {
	return MarshalCompact(p.OrderedMap)
}

// MarshalCompact encodes v as compact JSON without HTML escaping and without
// the trailing newline json.Encoder appends.
func MarshalCompact(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Has reports whether the field is present.
func (p *Payload) Has(field string) bool {
	_, ok := p.Get(field)
	return ok
}

// Number returns a numeric field as float64. The second result is false when
// the field is missing or not a number.
func (p *Payload) Number(field string) (float64, bool) {
	v, ok := p.Get(field)
	if !ok {
		return 0, false
	}
	return toFloat64(v)
}

// StringField returns a string field, or "" when missing or not a string.
func (p *Payload) StringField(field string) string {
	v, _ := p.Get(field)
	s, _ := v.(string)
	return s
}

// StringsField returns a string array field. Arrays decoded from JSON hold
// interface{} elements; non-string elements are skipped.
func (p *Payload) StringsField(field string) []string {
	v, ok := p.Get(field)
	if !ok {
		return nil
	}
	switch values := v.(type) {
	case []string:
		return append([]string(nil), values...)
	case []interface{}:
		result := make([]string, 0, len(values))
		for _, value := range values {
			if s, ok := value.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

// ApplicationID returns the application ID injected on verification.
func (p *Payload) ApplicationID() string {
	return p.StringField(ApplicationIDField)
}

// URI returns the backend URI.
func (p *Payload) URI() string {
	return p.StringField(URIField)
}

// RequiredTag returns the tag the origin stream must carry.
func (p *Payload) RequiredTag() string {
	return p.StringField(RequiredTagField)
}

// SessionID returns the session the token is limited to.
func (p *Payload) SessionID() string {
	return p.StringField(SessionIDField)
}

// RemoteAddress returns the remote address the token is limited to.
func (p *Payload) RemoteAddress() string {
	return p.StringField(RemoteAddressField)
}

// OriginStreamID returns the origin stream the token is limited to.
func (p *Payload) OriginStreamID() string {
	return p.StringField(OriginStreamIDField)
}

// Capabilities returns the granted capabilities.
func (p *Payload) Capabilities() []string {
	return p.StringsField(CapabilitiesField)
}

// ApplyTags returns the tags applied to new streams.
func (p *Payload) ApplyTags() []string {
	return p.StringsField(ApplyTagsField)
}

// Type returns the token type. The second result is false when the field
// is missing or holds an unknown value.
func (p *Payload) Type() (Type, bool) {
	t, err := TypeString(p.StringField(TypeField))
	if err != nil {
		return 0, false
	}
	return t, true
}

// Expires returns the expiration time.
func (p *Payload) Expires() (time.Time, bool) {
	ms, ok := p.Number(ExpiresField)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

// Expired returns true if the token has expired at now. A payload without
// an expiration is considered expired.
func (p *Payload) Expired(now time.Time) bool {
	exp, ok := p.Expires()
	if !ok {
		return true
	}
	return !now.Before(exp)
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case *int64:
		if n == nil {
			return 0, false
		}
		return float64(*n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), !math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
