package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeEmail canonicalizes an email address for storage and lookup:
// Unicode NFKC normalization, trimmed whitespace, lowercased. Email
// uniqueness in the directory is defined over this form.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}
