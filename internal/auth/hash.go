package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces a storable digest for a new password. The scheme
// used for new records is chosen at startup; verification is independent of
// it (see VerifyPassword) so files with mixed digest formats keep working.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// SHA256Hasher computes the legacy unsalted hex digest. It matches the format
// of existing user files but offers no protection against rainbow tables;
// prefer BcryptHasher for new deployments.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	return sha256Hex(password), nil
}

// BcryptHasher computes a salted bcrypt hash.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// NewHasher returns the hasher for the given scheme ("sha256" or "bcrypt").
func NewHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case "sha256":
		return SHA256Hasher{}, nil
	case "bcrypt":
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hash scheme %q", scheme)
	}
}

// VerifyPassword reports whether password matches the stored digest. The
// digest format decides the comparison: bcrypt hashes carry the "$2" version
// prefix, anything else is treated as a legacy hex SHA-256 digest.
func VerifyPassword(password, digest string) bool {
	if strings.HasPrefix(digest, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	computed := sha256Hex(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
