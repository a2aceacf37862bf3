package token

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	signingKeySize = 32
	minSecretBytes = 32

	// keyInfo domain-separates the derived key from any other use of the
	// same secret.
	keyInfo = "auth-service/token-signing/v1"
)

// DeriveSigningKey stretches the configured secret into HMAC key material
// using HKDF-SHA256. It is called once at startup; a failure here is a
// configuration error and must abort boot.
func DeriveSigningKey(secret string) ([]byte, error) {
	if len(secret) < minSecretBytes {
		return nil, ErrWeakSecret
	}
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	key := make([]byte, signingKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return key, nil
}
