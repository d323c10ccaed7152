package security

import (
	"errors" // Error inspection
	"fmt"    // Error wrapping

	"car_rental/internal/domain" // Validation error

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// BcryptHasher hashes passwords with bcrypt at a fixed cost
type BcryptHasher struct {
	Cost int // bcrypt work factor
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when cost is out of range
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

// Hash returns the bcrypt digest of a plaintext password
func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares a stored digest with a plaintext password
func (h BcryptHasher) Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
