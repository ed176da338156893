package external

import (
	"golang.org/x/crypto/bcrypt"

	"cropcast.app/pkg/errors"
)

// BcryptPasswordHasher implements PasswordHasher with bcrypt
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher creates a hasher; out of range costs fall back to bcrypt.DefaultCost
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.NewValidationError("password cannot be hashed: " + err.Error())
	}
	return string(hash), nil
}

// Compare returns an UnauthorizedError when the password does not match
func (h *BcryptPasswordHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errors.NewUnauthorizedError("invalid credentials")
	}
	return nil
}
