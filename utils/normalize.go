package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeUsername canonicalizes a Discord display name before storage so
// lookups and rendering agree on one byte sequence.
func NormalizeUsername(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
