package otp

import (
	"crypto/rand"
	"errors"
)

// DefaultLength is the code length used when a Numeric is built with length <= 0.
const DefaultLength = 6

// ErrEntropyUnavailable indicates the system random source failed.
var ErrEntropyUnavailable = errors.New("otp: system random source unavailable")

// Generator produces one-time passcodes.
type Generator interface {
	// Generate returns a new passcode.
	Generate() (string, error)
}

// Numeric generates fixed-length decimal codes.
type Numeric struct {
	length int
}

// NewNumeric returns a Numeric generator producing codes of the given length.
func NewNumeric(length int) *Numeric {
	if length <= 0 {
		length = DefaultLength
	}

	return &Numeric{length: length}
}

// Generate returns a new code where each digit is drawn uniformly from 0-9.
func (n *Numeric) Generate() (string, error) {
	buf := make([]byte, n.length)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrEntropyUnavailable, err)
	}

	code := make([]byte, n.length)
	for i, b := range buf {
		// resample bytes >= 250 so each digit stays uniform (256 % 10 != 0)
		v := b
		for v >= 250 {
			var one [1]byte
			if _, err := rand.Read(one[:]); err != nil {
				return "", errors.Join(ErrEntropyUnavailable, err)
			}
			v = one[0]
		}
		code[i] = '0' + v%10
	}

	return string(code), nil
}
