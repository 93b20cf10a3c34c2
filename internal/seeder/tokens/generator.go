// Package tokens generates random strings used as API and remember tokens.
package tokens

import (
	"crypto/rand"
	"errors"
	"io"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxByte is the largest multiple of len(alphabet) that fits in a byte;
// bytes at or above it are rejected so every symbol is equally likely.
const maxByte = 256 - (256 % len(alphabet))

var ErrNegativeLength = errors.New("token length must not be negative")

// Generator produces random tokens of an exact length.
type Generator interface {
	Generate(n int) (string, error)
}

// RandomGenerator draws alphanumeric tokens from a cryptographically secure source.
type RandomGenerator struct {
	source io.Reader
}

// NewRandomGenerator returns a generator backed by crypto/rand.
func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{source: rand.Reader}
}

func (g *RandomGenerator) Generate(n int) (string, error) {
	if n < 0 {
		return "", ErrNegativeLength
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n+n/4+1)

	for len(out) < n {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out), nil
}
