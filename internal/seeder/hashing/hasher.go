// Package hashing turns plaintext passwords into one-way hashes suitable
// for the users.password column.
package hashing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown hashing algorithm")
	ErrMismatch         = errors.New("password does not match hash")
	ErrMalformedHash    = errors.New("malformed hash")
)

// Hasher hashes passwords and checks plaintext candidates against a hash.
type Hasher interface {
	Hash(plain string) (string, error)
	// Compare returns nil when plain matches hash and ErrMismatch when it does not.
	Compare(hash, plain string) error
}

// New returns the Hasher registered under algorithm. cost only applies to
// bcrypt.
func New(algorithm string, cost int) (Hasher, error) {
	switch strings.ToLower(algorithm) {
	case "bcrypt", "":
		return NewBcryptHasher(cost)
	case "argon2id", "argon":
		return NewArgon2idHasher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}
