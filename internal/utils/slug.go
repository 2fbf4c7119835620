package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// Slug lowercases a name and collapses everything that is not a letter or
// digit into single dashes. Used for synthesized master-data identifiers.
func Slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SynthID builds a deterministic identifier for inferred master data:
// a type prefix, the name slug and a short fnv suffix to keep ids unique
// when different names slug identically.
func SynthID(prefix string, name string) string {
	return fmt.Sprintf("%s-%s-%04x", prefix, Slug(name), HashStringToUint64(name)&0xffff)
}
