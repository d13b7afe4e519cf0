package digest

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/edgeauth-in-go/pkg/token"
)

const (
	testApplicationID = "my-application-id"
	testSecret        = "my-secret"
)

func streamPayload() *token.Payload {
	p := token.NewPayload()
	p.Set(token.ExpiresField, int64(1000))
	p.Set(token.RequiredTagField, "my-tag=awesome")
	p.Set(token.TypeField, "stream")
	return p
}

// Helper to frame an arbitrary envelope as a digest token
func encodeEnvelopeJSON(t *testing.T, fields map[string]interface{}) string {
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	return Prefix + base64.StdEncoding.EncodeToString(raw)
}

func decodeWire(t *testing.T, encoded string) envelope {
	require.True(t, strings.HasPrefix(encoded, Prefix))
	raw, err := base64.StdEncoding.DecodeString(encoded[len(Prefix):])
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestIsDigestToken(t *testing.T) {
	assert.True(t, IsDigestToken("DIGEST:abc"))
	assert.True(t, IsDigestToken("DIGEST:"))
	assert.False(t, IsDigestToken(""))
	assert.False(t, IsDigestToken("DIGESTabc"))
	assert.False(t, IsDigestToken("digest:abc"))
	assert.False(t, IsDigestToken(" DIGEST:abc"))
}

func TestCalculateDigest(t *testing.T) {
	d := CalculateDigest(testApplicationID, testSecret, `{"expires":1000}`)

	raw, err := base64.StdEncoding.DecodeString(d)
	require.NoError(t, err)
	assert.Len(t, raw, 64, "HMAC-SHA512 output")

	t.Run("key is application ID and secret without separator", func(t *testing.T) {
		assert.Equal(t, d, CalculateDigest("", testApplicationID+testSecret, `{"expires":1000}`))
		assert.Equal(t, d, CalculateDigest(testApplicationID+testSecret, "", `{"expires":1000}`))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, d, CalculateDigest(testApplicationID, testSecret, `{"expires":1000}`))
	})

	t.Run("sensitive to every input", func(t *testing.T) {
		assert.NotEqual(t, d, CalculateDigest("other-application-id", testSecret, `{"expires":1000}`))
		assert.NotEqual(t, d, CalculateDigest(testApplicationID, "bad-secret", `{"expires":1000}`))
		assert.NotEqual(t, d, CalculateDigest(testApplicationID, testSecret, `{"expires": 1000}`))
	})
}

func TestSignAndEncode_WireFormat(t *testing.T) {
	encoded, err := SignAndEncode(testApplicationID, testSecret, streamPayload())
	require.NoError(t, err)

	env := decodeWire(t, encoded)
	assert.Equal(t, testApplicationID, env.ApplicationID)
	assert.Equal(t, `{"expires":1000,"requiredTag":"my-tag=awesome","type":"stream"}`, env.Token)
	assert.Equal(t, CalculateDigest(testApplicationID, testSecret, env.Token), env.Digest)

	raw, err := base64.StdEncoding.DecodeString(encoded[len(Prefix):])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), `{"applicationId":"my-application-id","digest":"`))
	assert.True(t, strings.HasSuffix(string(raw), `","token":"{\"expires\":1000,\"requiredTag\":\"my-tag=awesome\",\"type\":\"stream\"}"}`))
}

func TestSignAndEncode_KnownToken(t *testing.T) {
	const expected = "DIGEST:eyJhcHBsaWNhdGlvbklkIjoibXktYXBwbGljYXRpb24taWQiLCJkaWdlc3QiOiJGUGRrTFFyVGlsS0toRDduc2QzeDZoNWV1aXVsaDVCYy9lNEtmQWY0THB5Qno4N2trK2lrQWN5ZUppcFk3alo4clpTN1N0bWw1aERMWEJIZXkrbmw2QT09IiwidG9rZW4iOiJ7XCJleHBpcmVzXCI6MTAwMCxcInJlcXVpcmVkVGFnXCI6XCJteS10YWc9YXdlc29tZVwiLFwidHlwZVwiOlwic3RyZWFtXCJ9In0="

	encoded, err := SignAndEncode(testApplicationID, testSecret, streamPayload())
	require.NoError(t, err)
	assert.Equal(t, expected, encoded)
}

func TestSignAndEncode_Deterministic(t *testing.T) {
	first, err := SignAndEncode(testApplicationID, testSecret, streamPayload())
	require.NoError(t, err)
	second, err := SignAndEncode(testApplicationID, testSecret, streamPayload())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	reordered := token.NewPayload()
	reordered.Set(token.TypeField, "stream")
	reordered.Set(token.ExpiresField, int64(1000))
	reordered.Set(token.RequiredTagField, "my-tag=awesome")

	third, err := SignAndEncode(testApplicationID, testSecret, reordered)
	require.NoError(t, err)
	assert.NotEqual(t, first, third, "key order is part of the signed bytes")
}

func TestSignAndEncode_Validation(t *testing.T) {
	t.Run("missing expires", func(t *testing.T) {
		p := token.NewPayload()
		p.Set(token.TypeField, "stream")

		encoded, err := SignAndEncode(testApplicationID, testSecret, p)
		assert.Empty(t, encoded)
		require.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, token.ExpiresField, verr.Field)
		assert.Contains(t, verr.Error(), "expiration")
	})

	t.Run("non numeric expires", func(t *testing.T) {
		p := token.NewPayload()
		p.Set(token.ExpiresField, "tomorrow")

		_, err := SignAndEncode(testApplicationID, testSecret, p)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, token.ExpiresField, verr.Field)
	})

	t.Run("floating expires is accepted", func(t *testing.T) {
		p := token.NewPayload()
		p.Set(token.ExpiresField, 1000.5)

		_, err := SignAndEncode(testApplicationID, testSecret, p)
		assert.NoError(t, err)
	})

	t.Run("reserved application ID", func(t *testing.T) {
		p := streamPayload()
		p.Set(token.ApplicationIDField, "sneaky")

		_, err := SignAndEncode(testApplicationID, testSecret, p)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, token.ApplicationIDField, verr.Field)
	})

	t.Run("nil payload", func(t *testing.T) {
		_, err := SignAndEncode(testApplicationID, testSecret, nil)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = SignAndEncode(testApplicationID, testSecret, &token.Payload{})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestVerifyAndDecode_GoodSecret(t *testing.T) {
	encoded, err := SignAndEncode(testApplicationID, testSecret, streamPayload())
	require.NoError(t, err)

	result := VerifyAndDecode(testSecret, encoded)
	require.True(t, result.Verified)
	assert.Equal(t, CodeVerified, result.Code)
	assert.Empty(t, result.Message)
	require.NotNil(t, result.Value)

	assert.Equal(t, "my-tag=awesome", result.Value.RequiredTag())
	assert.Equal(t, testApplicationID, result.ApplicationID())
	assert.Equal(t, []string{"expires", "requiredTag", "type", "applicationId"}, result.Value.Keys())

	expires, ok := result.Value.Number(token.ExpiresField)
	require.True(t, ok)
	assert.Equal(t, float64(1000), expires)
}

func TestVerifyAndDecode_RoundTripPreservesPayload(t *testing.T) {
	p := token.NewPayload()
	p.Set(token.ExpiresField, int64(1700000000000))
	p.Set(token.URIField, "https://example.com/?a=1&b=<2>")
	p.Set(token.CapabilitiesField, []string{"multi-bitrate", "streaming"})
	p.Set("flag", true)
	p.Set("nested", map[string]interface{}{"depth": 1})

	original, err := p.Marshal()
	require.NoError(t, err)

	encoded, err := SignAndEncode(testApplicationID, testSecret, p)
	require.NoError(t, err)

	result := VerifyAndDecode(testSecret, encoded)
	require.True(t, result.Verified)

	result.Value.Delete(token.ApplicationIDField)
	decoded, err := result.Value.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, string(original), string(decoded))
	assert.Equal(t, string(original), string(decoded))
}

func TestVerifyAndDecode_BadSecret(t *testing.T) {
	encoded, err := SignAndEncode(testApplicationID, testSecret, streamPayload())
	require.NoError(t, err)

	result := VerifyAndDecode("bad-secret", encoded)
	assert.False(t, result.Verified)
	assert.Equal(t, CodeBadDigest, result.Code)
	assert.Empty(t, result.Message)
	assert.Nil(t, result.Value)
	assert.Empty(t, result.ApplicationID())
}

func TestVerifyAndDecode_Tampering(t *testing.T) {
	encoded, err := SignAndEncode(testApplicationID, testSecret, streamPayload())
	require.NoError(t, err)
	env := decodeWire(t, encoded)

	t.Run("digest altered", func(t *testing.T) {
		altered := []byte(env.Digest)
		if altered[0] == 'A' {
			altered[0] = 'B'
		} else {
			altered[0] = 'A'
		}
		tampered := encodeEnvelopeJSON(t, map[string]interface{}{
			"applicationId": env.ApplicationID,
			"digest":        string(altered),
			"token":         env.Token,
		})

		assert.Equal(t, CodeBadDigest, VerifyAndDecode(testSecret, tampered).Code)
	})

	t.Run("inner token altered", func(t *testing.T) {
		tampered := encodeEnvelopeJSON(t, map[string]interface{}{
			"applicationId": env.ApplicationID,
			"digest":        env.Digest,
			"token":         strings.Replace(env.Token, "stream", "publish", 1),
		})

		assert.Equal(t, CodeBadDigest, VerifyAndDecode(testSecret, tampered).Code)
	})

	t.Run("whitespace in inner token is signed", func(t *testing.T) {
		tampered := encodeEnvelopeJSON(t, map[string]interface{}{
			"applicationId": env.ApplicationID,
			"digest":        env.Digest,
			"token":         strings.Replace(env.Token, ":", ": ", 1),
		})

		assert.Equal(t, CodeBadDigest, VerifyAndDecode(testSecret, tampered).Code)
	})

	t.Run("application ID altered", func(t *testing.T) {
		tampered := encodeEnvelopeJSON(t, map[string]interface{}{
			"applicationId": "other-application-id",
			"digest":        env.Digest,
			"token":         env.Token,
		})

		assert.Equal(t, CodeBadDigest, VerifyAndDecode(testSecret, tampered).Code)
	})

	t.Run("base64 structure broken", func(t *testing.T) {
		tampered := encoded[:len(encoded)-3] + "!!!"
		assert.Equal(t, CodeBadToken, VerifyAndDecode(testSecret, tampered).Code)
	})
}

func TestVerifyAndDecode_NotADigestToken(t *testing.T) {
	for _, candidate := range []string{"", "bad-token", "DIGESTabc", "Bearer abc"} {
		result := VerifyAndDecode(testSecret, candidate)
		assert.False(t, result.Verified)
		assert.Equal(t, CodeNotADigestToken, result.Code, candidate)
		assert.Empty(t, result.Message)
		assert.Nil(t, result.Value)
	}
}

func TestVerifyAndDecode_BadToken(t *testing.T) {
	validDigest := CalculateDigest(testApplicationID, testSecret, `{"expires":1000}`)

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "bad token", encoded: "DIGEST:bad-token"},
		{name: "not base64", encoded: "DIGEST:not-base64!!"},
		{name: "empty body", encoded: "DIGEST:"},
		{name: "not json", encoded: Prefix + base64.StdEncoding.EncodeToString([]byte("not json"))},
		{name: "invalid utf-8", encoded: Prefix + base64.StdEncoding.EncodeToString([]byte{'{', '"', 0xff, 0xfe, '"', ':', '1', '}'})},
		{name: "json null", encoded: Prefix + base64.StdEncoding.EncodeToString([]byte("null"))},
		{name: "missing application ID", encoded: encodeEnvelopeJSON(t, map[string]interface{}{
			"digest": validDigest, "token": `{"expires":1000}`,
		})},
		{name: "empty digest", encoded: encodeEnvelopeJSON(t, map[string]interface{}{
			"applicationId": testApplicationID, "digest": "", "token": `{"expires":1000}`,
		})},
		{name: "missing token", encoded: encodeEnvelopeJSON(t, map[string]interface{}{
			"applicationId": testApplicationID, "digest": validDigest,
		})},
		{name: "non string token", encoded: encodeEnvelopeJSON(t, map[string]interface{}{
			"applicationId": testApplicationID, "digest": validDigest, "token": map[string]interface{}{"expires": 1000},
		})},
		{name: "non string application ID", encoded: encodeEnvelopeJSON(t, map[string]interface{}{
			"applicationId": 42, "digest": validDigest, "token": `{"expires":1000}`,
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := VerifyAndDecode(testSecret, tt.encoded)
			assert.False(t, result.Verified)
			assert.Equal(t, CodeBadToken, result.Code)
			assert.Empty(t, result.Message)
			assert.Nil(t, result.Value)
		})
	}
}

func TestVerifyAndDecode_ServerError(t *testing.T) {
	inner := `[1,2,3]`
	encoded := encodeEnvelopeJSON(t, map[string]interface{}{
		"applicationId": testApplicationID,
		"digest":        CalculateDigest(testApplicationID, testSecret, inner),
		"token":         inner,
	})

	result := VerifyAndDecode(testSecret, encoded)
	assert.False(t, result.Verified)
	assert.Equal(t, CodeServerError, result.Code)
	assert.NotEmpty(t, result.Message)
	assert.Nil(t, result.Value)
}

func TestResult_JSON(t *testing.T) {
	t.Run("message omitted unless server error", func(t *testing.T) {
		raw, err := json.Marshal(VerifyAndDecode(testSecret, "DIGEST:bad-token"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"verified":false,"code":"bad-token"}`, string(raw))
	})

	t.Run("verified carries value", func(t *testing.T) {
		encoded, err := SignAndEncode(testApplicationID, testSecret, streamPayload())
		require.NoError(t, err)

		raw, err := json.Marshal(VerifyAndDecode(testSecret, encoded))
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"verified":true,"code":"verified","value":{"expires":1000,"requiredTag":"my-tag=awesome","type":"stream","applicationId":"my-application-id"}}`,
			string(raw))
	})
}

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret(DefaultSecretSize)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, raw, DefaultSecretSize)

	other, err := GenerateSecret(DefaultSecretSize)
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)

	_, err = GenerateSecret(0)
	assert.Error(t, err)
}
