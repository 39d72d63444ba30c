package auth_test

import (
	"strings"
	"testing"

	"github.com/haneul-jeong/todo-server/internal/auth"
)

func TestSHA256Hasher_KnownDigest(t *testing.T) {
	h := auth.SHA256Hasher{}

	// sha256("password") — matches digests written by existing data files.
	const want = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"

	got, err := h.Hash("password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected digest %s, got %s", want, got)
	}
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := auth.BcryptHasher{Cost: 4} // min cost keeps the test fast

	digest, err := h.Hash("secret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Errorf("expected bcrypt format digest, got %s", digest)
	}

	if !auth.VerifyPassword("secret-password", digest) {
		t.Error("expected correct password to verify")
	}
	if auth.VerifyPassword("wrong-password", digest) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestVerifyPassword_DispatchesOnFormat(t *testing.T) {
	sha, _ := auth.SHA256Hasher{}.Hash("pw1")
	bc, err := auth.BcryptHasher{Cost: 4}.Hash("pw1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		digest   string
		want     bool
	}{
		{"sha256 match", "pw1", sha, true},
		{"sha256 mismatch", "pw2", sha, false},
		{"bcrypt match", "pw1", bc, true},
		{"bcrypt mismatch", "pw2", bc, false},
		{"empty digest", "pw1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := auth.VerifyPassword(tt.password, tt.digest); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewHasher(t *testing.T) {
	if _, err := auth.NewHasher("sha256"); err != nil {
		t.Errorf("unexpected error for sha256: %v", err)
	}
	if _, err := auth.NewHasher("bcrypt"); err != nil {
		t.Errorf("unexpected error for bcrypt: %v", err)
	}
	if _, err := auth.NewHasher("md5"); err == nil {
		t.Error("expected error for unknown scheme")
	}
}
