package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var _ Hasher = (*BcryptHasher)(nil)

// Hasher produces and verifies one-way salted password hashes.
type Hasher interface {
	// Hash digests the plaintext with a fresh random salt. Two calls with
	// the same input produce different outputs.
	Hash(plaintext string) (string, error)
	// Verify compares in constant time. A mismatch returns (false, nil);
	// an error means the stored hash itself is malformed.
	Verify(plaintext, hashed string) (bool, error)
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	// Anything else means the stored hash is not a bcrypt hash at all,
	// which indicates data corruption.
	return false, fmt.Errorf("malformed password hash: %w", err)
}
