package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt using the default
// cost. The returned string embeds the salt and cost, so it can be stored
// directly and later checked with CheckPasswordHash.
//
// Parameters:
//
//	password - the plaintext password to hash
//
// Returns:
//
//	string - the bcrypt hash suitable for storage
//	error  - non-nil if hashing fails (e.g. password longer than 72 bytes)
//
// Example usage:
//
//	hash, err := utils.HashPassword("s3cret")
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext password matches the
// stored bcrypt hash. Comparison is constant-time within bcrypt itself.
//
// Parameters:
//
//	password - the plaintext password supplied at login
//	hash     - the stored bcrypt hash
//
// Returns:
//
//	bool - true if the password matches the hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
