package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"carvault/internal/common"
)

// PasswordHasher abstracts one-way salted password hashing so the rest of
// the server never touches a concrete algorithm.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether a plaintext password matches a digest.
	Verify(password, digest string) bool
}

// BcryptHasher hashes passwords with bcrypt. The cost is the tunable work
// factor that keeps hashing expensive as hardware improves.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a salted one-way digest. The salt is random per call, so
// hashing the same password twice yields different digests.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorCrypto, err)
	}

	return string(digest), nil
}

// Verify compares in constant time inside bcrypt; a mismatch returns false,
// never an error.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
