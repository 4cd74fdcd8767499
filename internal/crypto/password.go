// Package crypto provides the password digests stored in place of plaintext passwords.
package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext password into the value persisted for a user and
// checks a candidate password against a persisted value.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// NewHasher returns the hasher for a PASSWORD_HASH setting.
func NewHasher(kind string) (Hasher, error) {
	switch kind {
	case "", "sha256":
		return SHA256{}, nil
	case "bcrypt":
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("crypto: unknown password hash %q", kind)
}

// SHA256 is a deterministic lowercase hex SHA-256 digest.
type SHA256 struct{}

func (SHA256) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256) Verify(stored, password string) bool {
	got, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(stored), []byte(got)) == 1
}

// Bcrypt is the salted alternative; its output is not a hex digest.
type Bcrypt struct{ Cost int }

func (b Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	return string(hash), err
}

func (Bcrypt) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
