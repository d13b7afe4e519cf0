package digest

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// DefaultSecretSize is the number of random bytes in a generated secret.
const DefaultSecretSize = 32

// RandomBytes returns size bytes from the system CSPRNG.
func RandomBytes(size int) ([]byte, error) {
	value := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, value); err != nil {
		return nil, err
	}

	return value, nil
}

// GenerateSecret returns a new base64 encoded shared secret of size random
// bytes.
func GenerateSecret(size int) (string, error) {
	if size <= 0 {
		return "", errors.New("secret size must be positive")
	}

	value, err := RandomBytes(size)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.Strict().EncodeToString(value), nil
}
