package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

var (
	// Lowercase alphanumerics, matching the suffix alphabet used in
	// persisted record identifiers.
	idSuffixChars = []rune("0123456789abcdefghijklmnopqrstuvwxyz")

	// Password alphabet avoids visually ambiguous characters since
	// generated passwords are delivered over email.
	passwordChars = []rune("23456789abcdefghjkmnpqrstvwxyzABCDEFGHJKMNPQRSTVWXYZ")
)

func randomFrom(alphabet []rune, n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		idx, err := RandomIntn(len(alphabet))
		if err != nil {
			return "", fmt.Errorf("generating random char index: %w", err)
		}
		sb.WriteRune(alphabet[idx])
	}
	return sb.String(), nil
}

// RandomSuffix returns n lowercase alphanumeric characters for record IDs.
func RandomSuffix(n int) (string, error) {
	return randomFrom(idSuffixChars, n)
}

// RandomPassword returns a generated password of n characters.
func RandomPassword(n int) (string, error) {
	return randomFrom(passwordChars, n)
}

// RandomIntn returns a uniform random int in [0, max).
func RandomIntn(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("generating random number: %w", err)
	}
	return int(n.Int64()), nil
}
