package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	portssvc "github.com/vendora/vendora_backend/internal/core/ports/services"
)

const (
	// saltLength is 32 bytes, 256 bits of entropy per digest.
	saltLength       = 32
	pbkdf2Iterations = 210_000
	pbkdf2KeyLength  = 32
)

// passwordHasher implements PasswordHasherSvc with PBKDF2-SHA256. Digests are
// encoded as "base64(hash):base64(salt)" so verification can recover the salt
// without any secret state.
type passwordHasher struct{}

// NewPasswordHasher creates a new password hasher.
func NewPasswordHasher() portssvc.PasswordHasherSvc {
	return &passwordHasher{}
}

// HashPassword derives a digest from the plaintext under a fresh random salt.
// Hashing the same plaintext twice yields different digests.
func (h *passwordHasher) HashPassword(plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plaintext), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key) + ":" + base64.StdEncoding.EncodeToString(salt), nil
}

// VerifyPassword reports whether plaintext matches the digest. The comparison
// is constant-time over the derived key. Malformed digests verify false.
func (h *passwordHasher) VerifyPassword(plaintext, digest string) bool {
	parts := strings.Split(digest, ":")
	if len(parts) != 2 {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	computed := pbkdf2.Key([]byte(plaintext), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return subtle.ConstantTimeCompare(hash, computed) == 1
}
