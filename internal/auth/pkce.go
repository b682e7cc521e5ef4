package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// tokenAlphabet is the printable alphabet for GenerateToken, matching the
// unreserved character set PKCE verifiers allow (RFC 7636 §4.1).
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// GenerateToken returns a random string of the given length drawn from a
// cryptographically secure source.
func GenerateToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}

	return string(buf), nil
}

// GenerateVerifier generates a PKCE code verifier (RFC 7636).
// Returns a 43-character URL-safe string (32 random bytes, base64url).
func GenerateVerifier() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateState generates a random state parameter for CSRF protection.
func GenerateState() (string, error) {
	return GenerateVerifier()
}

// CodeChallenge computes the S256 code challenge for a verifier:
// base64url(SHA-256(verifier)) with padding stripped. Deterministic.
func CodeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
