// Package auth implements the credential primitives of the service: one-way
// password hashing and signed bearer tokens. Both are stateless; every
// function receives its parameters explicitly.
package auth

import "golang.org/x/crypto/bcrypt"

// DefaultHashCost is the bcrypt work factor used when the configuration does
// not override it.
const DefaultHashCost = 12

// HashPassword produces a salted bcrypt hash of plaintext. The salt is
// generated per call, so hashing the same input twice yields different
// strings. The algorithm, cost and salt are all encoded in the result.
func HashPassword(plaintext string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plaintext matches the given bcrypt hash.
// A malformed hash yields false, never an error or a panic.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
