package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher is the one-way password function. The rest of the code only ever
// sees the opaque hash.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// BcryptHasher hashes with bcrypt. A zero Cost means bcrypt.DefaultCost;
// tests use bcrypt.MinCost to stay fast.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (h BcryptHasher) Verify(plain, hash string) bool {
	// A malformed stored hash reads as a wrong password.
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
