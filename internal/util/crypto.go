package util

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const tokenBytes = 32

// scrypt parameters for admin password hashing. The stored format is
// "<hex(derivedKey)>.<hex(salt)>".
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltBytes    = 16
)

// GenerateToken returns a 256-bit random token, hex-encoded.
func GenerateToken() (string, error) {
	bytes := make([]byte, tokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// HashToken returns the SHA-256 hex digest of a session token. Sessions are
// stored keyed by this hash so a database leak does not expose live tokens.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// HashPassword derives a salted scrypt hash of password in the
// "<hex>.<hex>" stored format.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key, err := scrypt.Key([]byte(password), []byte(hex.EncodeToString(salt)), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// VerifyPassword checks a supplied password against a stored scrypt hash
// using a constant-time comparison of the derived keys. A malformed stored
// hash returns an error; a plain mismatch returns (false, nil).
func VerifyPassword(storedHash, supplied string) (bool, error) {
	digest, salt, ok := strings.Cut(storedHash, ".")
	if !ok {
		return false, fmt.Errorf("malformed password hash")
	}
	want, err := hex.DecodeString(digest)
	if err != nil {
		return false, fmt.Errorf("malformed password hash: %w", err)
	}
	got, err := scrypt.Key([]byte(supplied), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// IsPasswordHash reports whether s looks like the stored "<hex>.<hex>" form.
// Used by config validation to reject misconfigured hashes at startup.
func IsPasswordHash(s string) bool {
	digest, salt, ok := strings.Cut(s, ".")
	if !ok || digest == "" || salt == "" {
		return false
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return false
	}
	if _, err := hex.DecodeString(salt); err != nil {
		return false
	}
	return true
}
