// Package urlgen generates short codes for submitted links.
package urlgen

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// charset is the lowercase base-36 alphabet.
const charset = "0123456789abcdefghijklmnopqrstuvwxyz"

// CodeLength is the length of generated short codes.
const CodeLength = 6

// maxAttempts bounds GenerateUnique before it gives up.
const maxAttempts = 100

// ErrCodeSpaceExhausted is returned when no free code was found within maxAttempts.
var ErrCodeSpaceExhausted = errors.New("could not generate an unused short code")

// Generate creates a new random short code.
func Generate() (string, error) {
	var sb strings.Builder
	sb.Grow(CodeLength)

	charsetLength := big.NewInt(int64(len(charset)))

	for i := 0; i < CodeLength; i++ {
		randomIndex, err := rand.Int(rand.Reader, charsetLength)
		if err != nil {
			return "", err
		}
		sb.WriteByte(charset[randomIndex.Int64()])
	}
	return sb.String(), nil
}

// GenerateUnique draws codes until taken reports one as free.
func GenerateUnique(taken func(code string) bool) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code, err := Generate()
		if err != nil {
			return "", err
		}
		if !taken(code) {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
